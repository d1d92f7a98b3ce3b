package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// download saves the file identified by fileID to dest.
func (b *Bot) download(ctx context.Context, fileID, dest string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		b.limiter.Observe(err)
		return fmt.Errorf("resolving file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("downloading file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading file %s: status %d", fileID, resp.StatusCode)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return f.Close()
}
