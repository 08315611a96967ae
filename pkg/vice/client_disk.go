package vice

import "context"

// AttachDisk mounts a disk image on a drive unit (8-11).
func (c *Client) AttachDisk(ctx context.Context, unit int, path string) (any, error) {
	return c.Call(ctx, "vice.disk.attach", map[string]any{
		"unit": unit,
		"path": path,
	})
}

// DetachDisk unmounts whatever is in the drive unit.
func (c *Client) DetachDisk(ctx context.Context, unit int) (any, error) {
	return c.Call(ctx, "vice.disk.detach", map[string]any{"unit": unit})
}

// DiskDirectory lists the directory of the disk in the drive unit.
func (c *Client) DiskDirectory(ctx context.Context, unit int) (any, error) {
	return c.Call(ctx, "vice.disk.list", map[string]any{"unit": unit})
}

// ReadSector returns the raw bytes of one disk sector.
func (c *Client) ReadSector(ctx context.Context, unit, track, sector int) (any, error) {
	return c.Call(ctx, "vice.disk.read_sector", map[string]any{
		"unit":   unit,
		"track":  track,
		"sector": sector,
	})
}

// SaveSnapshotOptions tunes [Client.SaveSnapshot].
type SaveSnapshotOptions struct {
	Description *string
	// IncludeROMs captures ROM contents, making the snapshot portable
	// across emulator installations.
	IncludeROMs *bool
	// IncludeDisks captures attached disk images.
	IncludeDisks *bool
}

// SaveSnapshot saves the full machine state under a name.
func (c *Client) SaveSnapshot(ctx context.Context, name string, opts *SaveSnapshotOptions) (any, error) {
	args := map[string]any{"name": name}
	if opts != nil {
		setString(args, "description", opts.Description)
		setBool(args, "include_roms", opts.IncludeROMs)
		setBool(args, "include_disks", opts.IncludeDisks)
	}
	return c.Call(ctx, "vice.snapshot.save", args)
}

// LoadSnapshot restores a previously saved machine state.
func (c *Client) LoadSnapshot(ctx context.Context, name string) (any, error) {
	return c.Call(ctx, "vice.snapshot.load", map[string]any{"name": name})
}

// Snapshots lists saved snapshots.
func (c *Client) Snapshots(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.snapshot.list", nil)
}
