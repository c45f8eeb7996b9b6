package stack

import "context"

// AsyncClient has the same methods as Client but does not wait for the
// reply. Commands rejected by argument validation are returned resolved.
//
//	cmd := client.Async().BFAdd(ctx, "bf", "item")
//	if err := cmd.Wait(ctx); err != nil {
//		...
//	}
type AsyncClient struct {
	cmdable

	client *Client
}

func (a *AsyncClient) process(ctx context.Context, cmd Cmder) error {
	if cmd.Ready() {
		return cmd.Err()
	}
	go func() {
		_ = a.client.Process(ctx, cmd)
	}()
	return nil
}
