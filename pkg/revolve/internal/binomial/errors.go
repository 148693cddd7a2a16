package binomial

import "fmt"

func errInvalidMaxN(maxN int) error {
	return fmt.Errorf("binomial: max_n must be at least 2, got %d", maxN)
}

func errUnexpectedSnapshot() error {
	return fmt.Errorf("binomial: attempted to write beyond the allotted checkpointing units")
}

func errInvalidState(detail string) error {
	return fmt.Errorf("binomial: invalid checkpointing state: %s", detail)
}
