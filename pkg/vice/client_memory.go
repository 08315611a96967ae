package vice

import "context"

// ReadMemoryOptions tunes [Client.ReadMemory].
type ReadMemoryOptions struct {
	// Bank selects a memory bank by name, e.g. "ram" or "io".
	Bank *string
}

// ReadMemory reads size bytes starting at address.
func (c *Client) ReadMemory(ctx context.Context, address Address, size int, opts *ReadMemoryOptions) (any, error) {
	args := map[string]any{"address": address, "size": size}
	if opts != nil {
		setString(args, "bank", opts.Bank)
	}
	return c.Call(ctx, "vice.memory.read", args)
}

// WriteMemory writes the given bytes starting at address.
func (c *Client) WriteMemory(ctx context.Context, address Address, data []int) (any, error) {
	return c.Call(ctx, "vice.memory.write", map[string]any{
		"address": address,
		"data":    data,
	})
}

// MemoryBanks lists the memory banks the emulator exposes.
func (c *Client) MemoryBanks(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.memory.banks", nil)
}

// SearchMemoryOptions tunes [Client.SearchMemory].
type SearchMemoryOptions struct {
	// Mask selects which pattern bytes must match exactly; 0 bytes are
	// wildcards.
	Mask []int
	// MaxResults caps the number of hits returned.
	MaxResults *int
}

// SearchMemory scans the address range for a byte pattern.
func (c *Client) SearchMemory(ctx context.Context, start, end Address, pattern []int, opts *SearchMemoryOptions) (any, error) {
	args := map[string]any{"start": start, "end": end, "pattern": pattern}
	if opts != nil {
		setInts(args, "mask", opts.Mask)
		setInt(args, "max_results", opts.MaxResults)
	}
	return c.Call(ctx, "vice.memory.search", args)
}

// FillMemory writes the pattern repeatedly across the address range.
func (c *Client) FillMemory(ctx context.Context, start, end Address, pattern []int) (any, error) {
	return c.Call(ctx, "vice.memory.fill", map[string]any{
		"start":   start,
		"end":     end,
		"pattern": pattern,
	})
}

// CompareMemoryOptions supplies the operands for [Client.CompareMemory].
// For mode "ranges" set Start1, End1 and Start2; for mode "snapshot" set
// SnapshotName plus optionally Start and End to narrow the comparison.
type CompareMemoryOptions struct {
	Start1       Address
	End1         Address
	Start2       Address
	SnapshotName *string
	Start        Address
	End          Address
}

// CompareMemory diffs two memory ranges or current memory against a
// snapshot.
func (c *Client) CompareMemory(ctx context.Context, mode string, opts *CompareMemoryOptions) (any, error) {
	args := map[string]any{"mode": mode}
	if opts != nil {
		setAddr(args, "start1", opts.Start1)
		setAddr(args, "end1", opts.End1)
		setAddr(args, "start2", opts.Start2)
		setString(args, "snapshot_name", opts.SnapshotName)
		setAddr(args, "start", opts.Start)
		setAddr(args, "end", opts.End)
	}
	return c.Call(ctx, "vice.memory.compare", args)
}

// MemoryMapOptions tunes [Client.MemoryMap].
type MemoryMapOptions struct {
	Start Address
	End   Address
	// Granularity is the bucket size in bytes for the usage summary.
	Granularity *int
}

// MemoryMap summarises memory usage across an address range.
func (c *Client) MemoryMap(ctx context.Context, opts *MemoryMapOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setAddr(args, "start", opts.Start)
		setAddr(args, "end", opts.End)
		setInt(args, "granularity", opts.Granularity)
	}
	return c.Call(ctx, "vice.memory.map", args)
}

// WatchOptions tunes [Client.AddWatch].
type WatchOptions struct {
	// Size is the watched range length in bytes. Default 1.
	Size *int
	// Type is "read", "write" or "access". Default access.
	Type *string
	// Condition is a server-side expression that must hold for the watch
	// to trigger.
	Condition *string
}

// AddWatch sets a watchpoint on a memory address.
func (c *Client) AddWatch(ctx context.Context, address Address, opts *WatchOptions) (any, error) {
	args := map[string]any{"address": address}
	if opts != nil {
		setInt(args, "size", opts.Size)
		setString(args, "type", opts.Type)
		setString(args, "condition", opts.Condition)
	}
	return c.Call(ctx, "vice.watch.add", args)
}
