// Package scan gathers per-file unsafe metrics for packages and splits
// them by build membership.
package scan

import (
	"sort"

	"geiger/internal/core/errors"
	"geiger/internal/engine/counter"
)

// FileEntry is the scan result for one file of a package.
type FileEntry struct {
	Metrics      counter.FileMetrics
	IsEntryPoint bool
}

// PackageMetrics maps file paths to their scan results.
type PackageMetrics map[string]FileEntry

// Paths returns the file paths in sorted order.
func (pm PackageMetrics) Paths() []string {
	paths := make([]string, 0, len(pm))
	for p := range pm {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// UsedFiles is the set of files compiled into the selected build target.
type UsedFiles map[string]struct{}

func NewUsedFiles(paths ...string) UsedFiles {
	u := make(UsedFiles, len(paths))
	for _, p := range paths {
		u[p] = struct{}{}
	}
	return u
}

func (u UsedFiles) Contains(path string) bool {
	_, ok := u[path]
	return ok
}

// ForbidPolicy decides a package-level forbids_unsafe flag from its files.
type ForbidPolicy string

const (
	ForbidPolicyEntryPoint ForbidPolicy = "entry-point"
	ForbidPolicyAll        ForbidPolicy = "all"
	ForbidPolicyAny        ForbidPolicy = "any"
)

func ParseForbidPolicy(s string) (ForbidPolicy, error) {
	switch p := ForbidPolicy(s); p {
	case ForbidPolicyEntryPoint, ForbidPolicyAll, ForbidPolicyAny:
		return p, nil
	case "":
		return ForbidPolicyEntryPoint, nil
	default:
		return "", errors.Newf(errors.CodeValidationError, "unknown forbid policy %q (want entry-point, all or any)", s)
	}
}

// SplitResult holds the used and unused sums for one package.
type SplitResult struct {
	Used          counter.CounterBlock
	Unused        counter.CounterBlock
	ForbidsUnsafe bool
}

// Split sums the blocks of files in used into Used and everything else into
// Unused. Paths only present in used have no metrics and are ignored.
func Split(pm PackageMetrics, used UsedFiles, policy ForbidPolicy) SplitResult {
	var res SplitResult
	for path, entry := range pm {
		if used.Contains(path) {
			res.Used = res.Used.Add(entry.Metrics.Counters)
		} else {
			res.Unused = res.Unused.Add(entry.Metrics.Counters)
		}
	}
	res.ForbidsUnsafe = forbidsUnsafe(pm, policy)
	return res
}

func forbidsUnsafe(pm PackageMetrics, policy ForbidPolicy) bool {
	switch policy {
	case ForbidPolicyAll:
		if len(pm) == 0 {
			return false
		}
		for _, entry := range pm {
			if !entry.Metrics.ForbidsUnsafe {
				return false
			}
		}
		return true
	case ForbidPolicyAny:
		for _, entry := range pm {
			if entry.Metrics.ForbidsUnsafe {
				return true
			}
		}
		return false
	default:
		for _, entry := range pm {
			if entry.IsEntryPoint {
				return entry.Metrics.ForbidsUnsafe
			}
		}
		return false
	}
}
