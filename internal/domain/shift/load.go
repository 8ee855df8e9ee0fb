package shift

// Load mapeia data (YYYY-MM-DD) para a quantidade de turnos não
// cancelados naquele dia. Dias sem turnos não aparecem.
type Load map[string]int

func (l Load) Total() int {
	total := 0
	for _, n := range l {
		total += n
	}
	return total
}
