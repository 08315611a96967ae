package schema

// Default returns the registry of schemas for every tool exposed by the
// VICE MCP server.
//
// The entries reflect what the server's command handlers actually parse,
// not what its tools/list endpoint advertises. Known discrepancies between
// the two are noted inline; `vicegrip audit` compares this catalog against
// a live server.
func Default() *Registry {
	return NewRegistry(catalog)
}

var catalog = map[string]ToolSchema{
	// Meta / connectivity.
	"vice.ping": {},

	// Execution control.
	"vice.execution.run":   {},
	"vice.execution.pause": {},
	"vice.execution.step": {
		Optional: []Param{
			{"count", KindNumber},
			{"step_over", KindBoolean},
		},
	},

	// CPU registers.
	"vice.registers.get": {},
	"vice.registers.set": {
		Required: []Param{
			{"register", KindString},
			{"value", KindNumber},
		},
	},

	// Memory. Addresses accept numbers or strings (symbols, "$c000").
	"vice.memory.read": {
		Required: []Param{
			{"address", KindAny},
			{"size", KindNumber},
		},
		Optional: []Param{
			{"bank", KindString},
		},
	},
	"vice.memory.write": {
		Required: []Param{
			{"address", KindAny},
			{"data", KindArray},
		},
	},
	"vice.memory.banks": {},
	"vice.memory.search": {
		Required: []Param{
			{"start", KindAny},
			{"end", KindAny},
			{"pattern", KindArray},
		},
		Optional: []Param{
			{"mask", KindArray},
			{"max_results", KindNumber},
		},
	},
	"vice.memory.fill": {
		Required: []Param{
			{"start", KindAny},
			{"end", KindAny},
			{"pattern", KindArray},
		},
	},
	"vice.memory.compare": {
		Required: []Param{
			{"mode", KindString},
		},
		Optional: []Param{
			{"start1", KindAny},
			{"end1", KindAny},
			{"start2", KindAny},
			{"snapshot_name", KindString},
			{"start", KindAny},
			{"end", KindAny},
		},
	},
	// tools/list advertises an empty schema, but the handler accepts these.
	"vice.memory.map": {
		Optional: []Param{
			{"start", KindAny},
			{"end", KindAny},
			{"granularity", KindNumber},
		},
	},

	// Checkpoints.
	"vice.checkpoint.add": {
		Required: []Param{
			{"start", KindAny},
		},
		Optional: []Param{
			{"end", KindAny},
			{"stop", KindBoolean},
			{"load", KindBoolean},
			{"store", KindBoolean},
			{"exec", KindBoolean},
		},
	},
	"vice.checkpoint.delete": {
		Required: []Param{
			{"checkpoint_num", KindNumber},
		},
	},
	"vice.checkpoint.list": {},
	"vice.checkpoint.toggle": {
		Required: []Param{
			{"checkpoint_num", KindNumber},
			{"enabled", KindBoolean},
		},
	},
	"vice.checkpoint.set_condition": {
		Required: []Param{
			{"checkpoint_num", KindNumber},
			{"condition", KindString},
		},
	},
	"vice.checkpoint.set_ignore_count": {
		Required: []Param{
			{"checkpoint_num", KindNumber},
			{"count", KindNumber},
		},
	},
	"vice.checkpoint.group.create": {
		Required: []Param{
			{"name", KindString},
		},
		Optional: []Param{
			{"checkpoint_ids", KindArray},
		},
	},
	"vice.checkpoint.group.add": {
		Required: []Param{
			{"group", KindString},
			{"checkpoint_ids", KindArray},
		},
	},
	"vice.checkpoint.group.toggle": {
		Required: []Param{
			{"group", KindString},
			{"enabled", KindBoolean},
		},
	},
	"vice.checkpoint.group.list": {},
	"vice.checkpoint.set_auto_snapshot": {
		Required: []Param{
			{"checkpoint_id", KindNumber},
			{"snapshot_prefix", KindString},
		},
		Optional: []Param{
			{"max_snapshots", KindNumber},
			{"include_disks", KindBoolean},
		},
	},
	"vice.checkpoint.clear_auto_snapshot": {
		Required: []Param{
			{"checkpoint_id", KindNumber},
		},
	},

	// Watchpoints.
	"vice.watch.add": {
		Required: []Param{
			{"address", KindAny},
		},
		Optional: []Param{
			{"size", KindNumber},
			{"type", KindString},
			{"condition", KindString},
		},
	},

	// Sprites and video chips.
	// tools/list advertises an empty schema, but the handler accepts "sprite".
	"vice.sprite.get": {
		Optional: []Param{
			{"sprite", KindNumber},
		},
	},
	"vice.sprite.set": {
		Required: []Param{
			{"sprite", KindNumber},
		},
		Optional: []Param{
			{"enabled", KindBoolean},
			{"x", KindNumber},
			{"y", KindNumber},
			{"color", KindNumber},
			{"multicolor", KindBoolean},
			{"expand_x", KindBoolean},
			{"expand_y", KindBoolean},
			{"priority", KindBoolean},
			{"multicolor0", KindNumber},
			{"multicolor1", KindNumber},
			{"pointer", KindNumber},
		},
	},
	// tools/list advertises an empty schema, but the handler requires sprite_number.
	"vice.sprite.inspect": {
		Required: []Param{
			{"sprite_number", KindNumber},
		},
		Optional: []Param{
			{"format", KindString},
		},
	},
	"vice.vicii.get_state": {},
	// tools/list advertises an empty schema, but the handler accepts "registers".
	"vice.vicii.set_state": {
		Optional: []Param{
			{"registers", KindArray},
		},
	},
	"vice.sid.get_state": {},
	// tools/list advertises an empty schema, but the handler accepts registers.
	"vice.sid.set_state": {
		Optional: []Param{
			{"registers", KindArray},
		},
	},
	"vice.cia.get_state": {},
	// tools/list advertises an empty schema, but the handler accepts CIA register arrays.
	"vice.cia.set_state": {
		Optional: []Param{
			{"cia1_registers", KindArray},
			{"cia2_registers", KindArray},
		},
	},

	// Disk and program handling.
	"vice.disk.attach": {
		Required: []Param{
			{"unit", KindNumber},
			{"path", KindString},
		},
	},
	"vice.disk.detach": {
		Required: []Param{
			{"unit", KindNumber},
		},
	},
	"vice.disk.list": {
		Required: []Param{
			{"unit", KindNumber},
		},
	},
	"vice.disk.read_sector": {
		Required: []Param{
			{"unit", KindNumber},
			{"track", KindNumber},
			{"sector", KindNumber},
		},
	},
	"vice.autostart": {
		Required: []Param{
			{"path", KindString},
		},
		Optional: []Param{
			{"program", KindString},
			{"run", KindBoolean},
			{"index", KindNumber},
		},
	},

	// Machine control and display.
	"vice.machine.reset": {
		Optional: []Param{
			{"mode", KindString},
			{"run_after", KindBoolean},
		},
	},
	"vice.display.screenshot": {
		Optional: []Param{
			{"path", KindString},
			{"format", KindString},
			{"return_base64", KindBoolean},
		},
	},
	"vice.display.get_dimensions": {},

	// Keyboard and joystick input.
	"vice.keyboard.type": {
		Required: []Param{
			{"text", KindString},
		},
		Optional: []Param{
			{"petscii_upper", KindBoolean},
		},
	},
	"vice.keyboard.key_press": {
		Required: []Param{
			{"key", KindString},
		},
		Optional: []Param{
			{"modifiers", KindArray},
			{"hold_frames", KindNumber},
			{"hold_ms", KindNumber},
		},
	},
	"vice.keyboard.key_release": {
		Required: []Param{
			{"key", KindString},
		},
		Optional: []Param{
			{"modifiers", KindArray},
		},
	},
	// tools/list advertises an empty schema, but the handler accepts "pressed".
	"vice.keyboard.restore": {
		Optional: []Param{
			{"pressed", KindBoolean},
		},
	},
	"vice.keyboard.matrix": {
		Optional: []Param{
			{"key", KindString},
			{"row", KindNumber},
			{"col", KindNumber},
			{"pressed", KindBoolean},
			{"hold_frames", KindNumber},
			{"hold_ms", KindNumber},
		},
	},
	"vice.joystick.set": {
		Optional: []Param{
			{"port", KindNumber},
			{"direction", KindString},
			{"fire", KindBoolean},
		},
	},

	// Debugging.
	"vice.disassemble": {
		Required: []Param{
			{"address", KindAny},
		},
		Optional: []Param{
			{"count", KindNumber},
			{"show_symbols", KindBoolean},
		},
	},
	"vice.symbols.load": {
		Required: []Param{
			{"path", KindString},
		},
		Optional: []Param{
			{"format", KindString},
		},
	},
	"vice.symbols.lookup": {
		Optional: []Param{
			{"name", KindString},
			{"address", KindAny},
		},
	},
	"vice.backtrace": {
		Optional: []Param{
			{"depth", KindNumber},
		},
	},
	"vice.run_until": {
		Optional: []Param{
			{"address", KindAny},
			{"cycles", KindNumber},
		},
	},

	// Snapshots.
	"vice.snapshot.save": {
		Required: []Param{
			{"name", KindString},
		},
		Optional: []Param{
			{"description", KindString},
			{"include_roms", KindBoolean},
			{"include_disks", KindBoolean},
		},
	},
	"vice.snapshot.load": {
		Required: []Param{
			{"name", KindString},
		},
	},
	"vice.snapshot.list": {},

	// Cycle counting.
	"vice.cycles.stopwatch": {
		Required: []Param{
			{"action", KindString},
		},
	},

	// Execution tracing.
	"vice.trace.start": {
		Required: []Param{
			{"output_file", KindString},
		},
		Optional: []Param{
			{"pc_filter_start", KindAny},
			{"pc_filter_end", KindAny},
			{"max_instructions", KindNumber},
			{"include_registers", KindBoolean},
		},
	},
	"vice.trace.stop": {
		Required: []Param{
			{"trace_id", KindString},
		},
	},

	// Interrupt logging.
	"vice.interrupt.log.start": {
		Optional: []Param{
			{"types", KindArray},
			{"max_entries", KindNumber},
		},
	},
	"vice.interrupt.log.stop": {
		Required: []Param{
			{"log_id", KindString},
		},
	},
	"vice.interrupt.log.read": {
		Required: []Param{
			{"log_id", KindString},
		},
		Optional: []Param{
			{"since_index", KindNumber},
		},
	},
}
