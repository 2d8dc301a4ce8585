package platform

import (
	"os"

	ps "github.com/mitchellh/go-ps"
)

// ProcessNames maps every running PID to its executable name.
func ProcessNames() (map[int]string, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(procs))
	for _, p := range procs {
		names[p.Pid()] = p.Executable()
	}
	return names, nil
}

// Ancestors returns the current PID followed by its parent chain.
// Windows owned by these processes belong to this session (our own
// window, the console that launched us).
func Ancestors() []int {
	curr := os.Getpid()
	an := []int{curr}
	seen := map[int]bool{curr: true}

	for {
		p, err := ps.FindProcess(curr)
		if p == nil || err != nil {
			break
		}
		curr = p.PPid()
		if curr <= 0 || seen[curr] {
			break
		}
		seen[curr] = true
		an = append(an, curr)
	}

	return an
}
