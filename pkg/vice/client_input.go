package vice

import "context"

// TypeText types a string through the emulated keyboard. petsciiUpper
// selects the uppercase/graphics character set; nil uses the server
// default.
func (c *Client) TypeText(ctx context.Context, text string, petsciiUpper *bool) (any, error) {
	args := map[string]any{"text": text}
	setBool(args, "petscii_upper", petsciiUpper)
	return c.Call(ctx, "vice.keyboard.type", args)
}

// KeyOptions tunes [Client.PressKey].
type KeyOptions struct {
	// Modifiers holds held modifier keys, e.g. "shift", "commodore".
	Modifiers []string
	// HoldFrames and HoldMs control how long the key stays down; set at
	// most one.
	HoldFrames *int
	HoldMs     *int
}

// PressKey presses a named key, optionally holding it for a duration.
func (c *Client) PressKey(ctx context.Context, key string, opts *KeyOptions) (any, error) {
	args := map[string]any{"key": key}
	if opts != nil {
		setStrings(args, "modifiers", opts.Modifiers)
		setInt(args, "hold_frames", opts.HoldFrames)
		setInt(args, "hold_ms", opts.HoldMs)
	}
	return c.Call(ctx, "vice.keyboard.key_press", args)
}

// ReleaseKey releases a key previously pressed with [Client.PressKey].
func (c *Client) ReleaseKey(ctx context.Context, key string, modifiers []string) (any, error) {
	args := map[string]any{"key": key}
	setStrings(args, "modifiers", modifiers)
	return c.Call(ctx, "vice.keyboard.key_release", args)
}

// Restore presses or releases the RESTORE key, which is wired to NMI
// rather than the keyboard matrix. pressed nil means a full press-release
// tap.
func (c *Client) Restore(ctx context.Context, pressed *bool) (any, error) {
	args := map[string]any{}
	setBool(args, "pressed", pressed)
	return c.Call(ctx, "vice.keyboard.restore", args)
}

// MatrixOptions addresses a key for [Client.KeyboardMatrix] either by name
// or by matrix row/column.
type MatrixOptions struct {
	Key     *string
	Row     *int
	Col     *int
	Pressed *bool
	// HoldFrames and HoldMs control how long the key stays down; set at
	// most one.
	HoldFrames *int
	HoldMs     *int
}

// KeyboardMatrix manipulates the keyboard matrix directly, below the
// symbolic key layer.
func (c *Client) KeyboardMatrix(ctx context.Context, opts *MatrixOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setString(args, "key", opts.Key)
		setInt(args, "row", opts.Row)
		setInt(args, "col", opts.Col)
		setBool(args, "pressed", opts.Pressed)
		setInt(args, "hold_frames", opts.HoldFrames)
		setInt(args, "hold_ms", opts.HoldMs)
	}
	return c.Call(ctx, "vice.keyboard.matrix", args)
}

// JoystickOptions carries the joystick state for [Client.SetJoystick].
type JoystickOptions struct {
	// Port is 1 or 2. Default 2, the common game port.
	Port *int
	// Direction is "up", "down", "left", "right", a diagonal like
	// "up_left", or "none" to centre the stick.
	Direction *string
	Fire      *bool
}

// SetJoystick sets the state of an emulated joystick.
func (c *Client) SetJoystick(ctx context.Context, opts *JoystickOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setInt(args, "port", opts.Port)
		setString(args, "direction", opts.Direction)
		setBool(args, "fire", opts.Fire)
	}
	return c.Call(ctx, "vice.joystick.set", args)
}
