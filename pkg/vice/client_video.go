package vice

import "context"

// Sprite returns one sprite's state, or all eight when sprite is nil.
func (c *Client) Sprite(ctx context.Context, sprite *int) (any, error) {
	args := map[string]any{}
	setInt(args, "sprite", sprite)
	return c.Call(ctx, "vice.sprite.get", args)
}

// SpriteOptions carries the writable sprite attributes for
// [Client.SetSprite]. Nil fields are left unchanged.
type SpriteOptions struct {
	Enabled     *bool
	X           *int
	Y           *int
	Color       *int
	Multicolor  *bool
	ExpandX     *bool
	ExpandY     *bool
	Priority    *bool
	Multicolor0 *int
	Multicolor1 *int
	Pointer     *int
}

// SetSprite updates attributes of one hardware sprite.
func (c *Client) SetSprite(ctx context.Context, sprite int, opts *SpriteOptions) (any, error) {
	args := map[string]any{"sprite": sprite}
	if opts != nil {
		setBool(args, "enabled", opts.Enabled)
		setInt(args, "x", opts.X)
		setInt(args, "y", opts.Y)
		setInt(args, "color", opts.Color)
		setBool(args, "multicolor", opts.Multicolor)
		setBool(args, "expand_x", opts.ExpandX)
		setBool(args, "expand_y", opts.ExpandY)
		setBool(args, "priority", opts.Priority)
		setInt(args, "multicolor0", opts.Multicolor0)
		setInt(args, "multicolor1", opts.Multicolor1)
		setInt(args, "pointer", opts.Pointer)
	}
	return c.Call(ctx, "vice.sprite.set", args)
}

// InspectSprite decodes a sprite's pixel data; format selects the rendering
// ("ascii", "binary", ...), nil uses the server default.
func (c *Client) InspectSprite(ctx context.Context, spriteNumber int, format *string) (any, error) {
	args := map[string]any{"sprite_number": spriteNumber}
	setString(args, "format", format)
	return c.Call(ctx, "vice.sprite.inspect", args)
}

// VICIIState returns the VIC-II video chip registers, decoded.
func (c *Client) VICIIState(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.vicii.get_state", nil)
}

// SetVICIIState writes raw VIC-II register values.
func (c *Client) SetVICIIState(ctx context.Context, registers []int) (any, error) {
	args := map[string]any{}
	setInts(args, "registers", registers)
	return c.Call(ctx, "vice.vicii.set_state", args)
}

// SIDState returns the SID sound chip registers, decoded.
func (c *Client) SIDState(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.sid.get_state", nil)
}

// SetSIDState writes raw SID register values.
func (c *Client) SetSIDState(ctx context.Context, registers []int) (any, error) {
	args := map[string]any{}
	setInts(args, "registers", registers)
	return c.Call(ctx, "vice.sid.set_state", args)
}

// CIAState returns both CIA chips' registers, decoded.
func (c *Client) CIAState(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.cia.get_state", nil)
}

// CIAStateOptions selects which CIA chip [Client.SetCIAState] writes.
type CIAStateOptions struct {
	CIA1Registers []int
	CIA2Registers []int
}

// SetCIAState writes raw CIA register values.
func (c *Client) SetCIAState(ctx context.Context, opts *CIAStateOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setInts(args, "cia1_registers", opts.CIA1Registers)
		setInts(args, "cia2_registers", opts.CIA2Registers)
	}
	return c.Call(ctx, "vice.cia.set_state", args)
}

// ScreenshotOptions tunes [Client.Screenshot].
type ScreenshotOptions struct {
	// Path writes the image to the server's filesystem.
	Path *string
	// Format is "png" or "bmp". Default png.
	Format *string
	// ReturnBase64 inlines the image in the response instead of (or in
	// addition to) writing it to Path.
	ReturnBase64 *bool
}

// Screenshot captures the current display.
func (c *Client) Screenshot(ctx context.Context, opts *ScreenshotOptions) (any, error) {
	args := map[string]any{}
	if opts != nil {
		setString(args, "path", opts.Path)
		setString(args, "format", opts.Format)
		setBool(args, "return_base64", opts.ReturnBase64)
	}
	return c.Call(ctx, "vice.display.screenshot", args)
}

// DisplayDimensions returns the emulated display's size and borders.
func (c *Client) DisplayDimensions(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.display.get_dimensions", nil)
}
