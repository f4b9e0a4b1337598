// Package counter holds the safe/unsafe tallies produced by a file scan.
package counter

// Count is a tally of safe and unsafe occurrences of one construct kind.
type Count struct {
	Safe   uint64
	Unsafe uint64
}

// Record adds one occurrence to the bucket selected by isUnsafe.
func (c *Count) Record(isUnsafe bool) {
	if isUnsafe {
		c.Unsafe++
	} else {
		c.Safe++
	}
}

func (c Count) Add(other Count) Count {
	return Count{
		Safe:   c.Safe + other.Safe,
		Unsafe: c.Unsafe + other.Unsafe,
	}
}

func (c Count) Total() uint64 {
	return c.Safe + c.Unsafe
}

// CounterBlock is the five-kind tally for one file or an aggregate of files.
type CounterBlock struct {
	Functions  Count
	Exprs      Count
	ItemImpls  Count
	ItemTraits Count
	Methods    Count
}

func (b CounterBlock) Add(other CounterBlock) CounterBlock {
	return CounterBlock{
		Functions:  b.Functions.Add(other.Functions),
		Exprs:      b.Exprs.Add(other.Exprs),
		ItemImpls:  b.ItemImpls.Add(other.ItemImpls),
		ItemTraits: b.ItemTraits.Add(other.ItemTraits),
		Methods:    b.Methods.Add(other.Methods),
	}
}

// UnsafeTotal sums the unsafe bucket across all five kinds.
func (b CounterBlock) UnsafeTotal() uint64 {
	return b.Functions.Unsafe + b.Exprs.Unsafe + b.ItemImpls.Unsafe + b.ItemTraits.Unsafe + b.Methods.Unsafe
}

func (b CounterBlock) HasUnsafe() bool {
	return b.UnsafeTotal() > 0
}

// Kinds returns the counts in column order: functions, expressions, impls,
// traits, methods.
func (b CounterBlock) Kinds() [5]Count {
	return [5]Count{b.Functions, b.Exprs, b.ItemImpls, b.ItemTraits, b.Methods}
}

// FileMetrics is the result of scanning a single source file.
type FileMetrics struct {
	Counters      CounterBlock
	ForbidsUnsafe bool
}
