package vice

import "context"

// CheckpointOptions tunes [Client.AddCheckpoint].
type CheckpointOptions struct {
	// End extends the checkpoint to a range; nil checkpoints a single
	// address.
	End Address
	// Stop halts emulation when the checkpoint triggers. Default true on
	// the server.
	Stop *bool
	// Load, Store and Exec select which access types trigger. Default is
	// exec only.
	Load  *bool
	Store *bool
	Exec  *bool
}

// AddCheckpoint sets a breakpoint or range checkpoint starting at start.
func (c *Client) AddCheckpoint(ctx context.Context, start Address, opts *CheckpointOptions) (any, error) {
	args := map[string]any{"start": start}
	if opts != nil {
		setAddr(args, "end", opts.End)
		setBool(args, "stop", opts.Stop)
		setBool(args, "load", opts.Load)
		setBool(args, "store", opts.Store)
		setBool(args, "exec", opts.Exec)
	}
	return c.Call(ctx, "vice.checkpoint.add", args)
}

// DeleteCheckpoint removes a checkpoint by number.
func (c *Client) DeleteCheckpoint(ctx context.Context, checkpointNum int) (any, error) {
	return c.Call(ctx, "vice.checkpoint.delete", map[string]any{
		"checkpoint_num": checkpointNum,
	})
}

// Checkpoints lists all checkpoints.
func (c *Client) Checkpoints(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.checkpoint.list", nil)
}

// ToggleCheckpoint enables or disables a checkpoint.
func (c *Client) ToggleCheckpoint(ctx context.Context, checkpointNum int, enabled bool) (any, error) {
	return c.Call(ctx, "vice.checkpoint.toggle", map[string]any{
		"checkpoint_num": checkpointNum,
		"enabled":        enabled,
	})
}

// SetCheckpointCondition attaches a trigger condition, e.g. "A == $ff".
func (c *Client) SetCheckpointCondition(ctx context.Context, checkpointNum int, condition string) (any, error) {
	return c.Call(ctx, "vice.checkpoint.set_condition", map[string]any{
		"checkpoint_num": checkpointNum,
		"condition":      condition,
	})
}

// SetCheckpointIgnoreCount makes the checkpoint skip its next count hits.
func (c *Client) SetCheckpointIgnoreCount(ctx context.Context, checkpointNum, count int) (any, error) {
	return c.Call(ctx, "vice.checkpoint.set_ignore_count", map[string]any{
		"checkpoint_num": checkpointNum,
		"count":          count,
	})
}

// CreateCheckpointGroup creates a named group, optionally seeding it with
// existing checkpoint ids.
func (c *Client) CreateCheckpointGroup(ctx context.Context, name string, checkpointIDs []int) (any, error) {
	args := map[string]any{"name": name}
	setInts(args, "checkpoint_ids", checkpointIDs)
	return c.Call(ctx, "vice.checkpoint.group.create", args)
}

// AddToCheckpointGroup adds checkpoints to an existing group.
func (c *Client) AddToCheckpointGroup(ctx context.Context, group string, checkpointIDs []int) (any, error) {
	return c.Call(ctx, "vice.checkpoint.group.add", map[string]any{
		"group":          group,
		"checkpoint_ids": checkpointIDs,
	})
}

// ToggleCheckpointGroup enables or disables every checkpoint in a group.
func (c *Client) ToggleCheckpointGroup(ctx context.Context, group string, enabled bool) (any, error) {
	return c.Call(ctx, "vice.checkpoint.group.toggle", map[string]any{
		"group":   group,
		"enabled": enabled,
	})
}

// CheckpointGroups lists all checkpoint groups and their members.
func (c *Client) CheckpointGroups(ctx context.Context) (any, error) {
	return c.Call(ctx, "vice.checkpoint.group.list", nil)
}

// AutoSnapshotOptions tunes [Client.SetAutoSnapshot].
type AutoSnapshotOptions struct {
	// MaxSnapshots caps how many auto-snapshots are kept before the
	// oldest is discarded.
	MaxSnapshots *int
	// IncludeDisks captures attached disk images in each snapshot.
	IncludeDisks *bool
}

// SetAutoSnapshot makes the checkpoint save a named snapshot every time it
// triggers.
func (c *Client) SetAutoSnapshot(ctx context.Context, checkpointID int, snapshotPrefix string, opts *AutoSnapshotOptions) (any, error) {
	args := map[string]any{
		"checkpoint_id":   checkpointID,
		"snapshot_prefix": snapshotPrefix,
	}
	if opts != nil {
		setInt(args, "max_snapshots", opts.MaxSnapshots)
		setBool(args, "include_disks", opts.IncludeDisks)
	}
	return c.Call(ctx, "vice.checkpoint.set_auto_snapshot", args)
}

// ClearAutoSnapshot removes the auto-snapshot behaviour from a checkpoint.
func (c *Client) ClearAutoSnapshot(ctx context.Context, checkpointID int) (any, error) {
	return c.Call(ctx, "vice.checkpoint.clear_auto_snapshot", map[string]any{
		"checkpoint_id": checkpointID,
	})
}
