package rules

/*
ApplyConwayRules applies the standard B3/S23 Game of Life rule to determine
the next state of a cell.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with
exactly 3, and every other combination yields a dead cell. That collapses to:
(alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
