package vice

import "context"

// Ping checks that the emulator bridge is responding.
func (c *Client) Ping(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.ping", nil)
}

// Run resumes emulation.
func (c *Client) Run(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.execution.run", nil)
}

// Pause halts emulation.
func (c *Client) Pause(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.execution.pause", nil)
}

// StepOptions tunes [Client.Step].
type StepOptions struct {
	// Count is the number of instructions to step. Default 1.
	Count *int
	// StepOver steps over subroutine calls instead of into them.
	StepOver *bool
}

// Step executes one or more CPU instructions while paused.
func (c *Client) Step(ctx context.Context, opts *StepOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setInt(args, "count", opts.Count)
		setBool(args, "step_over", opts.StepOver)
	}
	return c.Call(ctx, "vice.execution.step", args)
}

// Registers returns the current CPU register values.
func (c *Client) Registers(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.registers.get", nil)
}

// SetRegister writes a CPU register, e.g. ("A", 0x42) or ("PC", 0xc000).
func (c *Client) SetRegister(ctx context.Context, register string, value int) (any, error) {
	return c.Call(ctx, "vice.registers.set", map[string]any{
		"register": register,
		"value":    value,
	})
}

// ResetOptions tunes [Client.Reset].
type ResetOptions struct {
	// Mode is "soft" or "hard". Default soft.
	Mode *string
	// RunAfter resumes emulation after the reset.
	RunAfter *bool
}

// Reset resets the emulated machine.
func (c *Client) Reset(ctx context.Context, opts *ResetOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setString(args, "mode", opts.Mode)
		setBool(args, "run_after", opts.RunAfter)
	}
	return c.Call(ctx, "vice.machine.reset", args)
}

// AutostartOptions tunes [Client.Autostart].
type AutostartOptions struct {
	// Program selects a file inside a disk image by name.
	Program *string
	// Run starts the program after loading. Default true on the server.
	Run *bool
	// Index selects a directory entry inside a disk image.
	Index *int
}

// Autostart loads and runs a program or disk image from the host filesystem.
func (c *Client) Autostart(ctx context.Context, path string, opts *AutostartOptions) (any, error) {
	args := map[string]any{"path": path}
	if opts != nil {
		setString(args, "program", opts.Program)
		setBool(args, "run", opts.Run)
		setInt(args, "index", opts.Index)
	}
	return c.Call(ctx, "vice.autostart", args)
}

// RunUntilOptions tunes [Client.RunUntil]. Set exactly one of Address or
// Cycles; the server rejects ambiguous requests.
type RunUntilOptions struct {
	Address Address
	Cycles  *int
}

// RunUntil resumes emulation until a target address is reached or a cycle
// budget is spent.
func (c *Client) RunUntil(ctx context.Context, opts *RunUntilOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setAddr(args, "address", opts.Address)
		setInt(args, "cycles", opts.Cycles)
	}
	return c.Call(ctx, "vice.run_until", args)
}

// Backtrace returns the call stack reconstructed from the 6502 stack page.
// depth limits the number of frames; nil uses the server default.
func (c *Client) Backtrace(ctx context.Context, depth *int) (any, error) {
	args := map[string]any{}
	setInt(args, "depth", depth)
	return c.Call(ctx, "vice.backtrace", args)
}

// DisassembleOptions tunes [Client.Disassemble].
type DisassembleOptions struct {
	// Count is the number of instructions to decode.
	Count *int
	// ShowSymbols substitutes loaded symbol names for addresses.
	ShowSymbols *bool
}

// Disassemble decodes instructions starting at address.
func (c *Client) Disassemble(ctx context.Context, address Address, opts *DisassembleOptions) (any, error) {
	args := map[string]any{"address": address}
	if opts != nil {
		setInt(args, "count", opts.Count)
		setBool(args, "show_symbols", opts.ShowSymbols)
	}
	return c.Call(ctx, "vice.disassemble", args)
}

// LoadSymbols loads a symbol table from the host filesystem. format names
// the file layout ("vice", "acme", ...); nil lets the server sniff it.
func (c *Client) LoadSymbols(ctx context.Context, path string, format *string) (any, error) {
	args := map[string]any{"path": path}
	setString(args, "format", format)
	return c.Call(ctx, "vice.symbols.load", args)
}

// SymbolLookupOptions selects what [Client.LookupSymbol] resolves: a name
// to an address, or an address to the nearest symbol.
type SymbolLookupOptions struct {
	Name    *string
	Address Address
}

// LookupSymbol resolves between symbol names and addresses.
func (c *Client) LookupSymbol(ctx context.Context, opts *SymbolLookupOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setString(args, "name", opts.Name)
		setAddr(args, "address", opts.Address)
	}
	return c.Call(ctx, "vice.symbols.lookup", args)
}

// Stopwatch controls the cycle counter; action is "start", "stop", "read"
// or "reset".
func (c *Client) Stopwatch(ctx context.Context, action string) (any, error) {
	return c.Call(ctx, "vice.cycles.stopwatch", map[string]any{"action": action})
}
