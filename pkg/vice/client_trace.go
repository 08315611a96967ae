package vice

import "context"

// TraceOptions tunes [Client.StartTrace].
type TraceOptions struct {
	// PCFilterStart and PCFilterEnd restrict tracing to a PC range.
	PCFilterStart Address
	PCFilterEnd   Address
	// MaxInstructions stops the trace after a budget of instructions.
	MaxInstructions *int
	// IncludeRegisters records register values with every instruction.
	IncludeRegisters *bool
}

// StartTrace begins logging executed instructions to a file on the
// server's filesystem. The returned result carries the trace id used to
// stop it.
func (c *Client) StartTrace(ctx context.Context, outputFile string, opts *TraceOptions) (any, error) {
	args := map[string]any{"output_file": outputFile}
	if opts != nil {
		setAddr(args, "pc_filter_start", opts.PCFilterStart)
		setAddr(args, "pc_filter_end", opts.PCFilterEnd)
		setInt(args, "max_instructions", opts.MaxInstructions)
		setBool(args, "include_registers", opts.IncludeRegisters)
	}
	return c.Call(ctx, "vice.trace.start", args)
}

// StopTrace ends an instruction trace and flushes its output file.
func (c *Client) StopTrace(ctx context.Context, traceID string) (any, error) {
	return c.Call(ctx, "vice.trace.stop", map[string]any{"trace_id": traceID})
}

// InterruptLogOptions tunes [Client.StartInterruptLog].
type InterruptLogOptions struct {
	// Types filters which interrupts are logged: "irq", "nmi", "brk".
	// Empty logs all of them.
	Types []string
	// MaxEntries bounds the in-memory log; older entries are dropped.
	MaxEntries *int
}

// StartInterruptLog begins recording interrupt activity. The returned
// result carries the log id used to read and stop it.
func (c *Client) StartInterruptLog(ctx context.Context, opts *InterruptLogOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setStrings(args, "types", opts.Types)
		setInt(args, "max_entries", opts.MaxEntries)
	}
	return c.Call(ctx, "vice.interrupt.log.start", args)
}

// StopInterruptLog ends interrupt recording for the given log.
func (c *Client) StopInterruptLog(ctx context.Context, logID string) (any, error) {
	return c.Call(ctx, "vice.interrupt.log.stop", map[string]any{"log_id": logID})
}

// ReadInterruptLog returns recorded interrupt entries. sinceIndex skips
// entries already seen; nil reads from the start.
func (c *Client) ReadInterruptLog(ctx context.Context, logID string, sinceIndex *int) (any, error) {
	args := map[string]any{"log_id": logID}
	setInt(args, "since_index", sinceIndex)
	return c.Call(ctx, "vice.interrupt.log.read", args)
}
