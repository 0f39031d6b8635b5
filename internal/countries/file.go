package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads a saved provider response from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return raw, nil
}
