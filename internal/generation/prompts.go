package generation

import (
	"context"
	"embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/*.txt
var templateFS embed.FS

// Render formats the named template with the given variables via the Eino
// prompt component and returns the messages ready for a chat model. FString
// formatting, so templates use {name} placeholders and escape literal braces
// by doubling.
func Render(ctx context.Context, tpl Template, vars map[string]any) ([]*schema.Message, error) {
	raw, err := templateFS.ReadFile(fmt.Sprintf("template/%s_prompt.txt", tpl))
	if err != nil {
		return nil, fmt.Errorf("unknown prompt template %q: %w", tpl, err)
	}

	t := prompt.FromMessages(
		schema.FString,
		schema.UserMessage(string(raw)),
	)
	msgs, err := t.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", tpl, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return nil, fmt.Errorf("render %s prompt: empty result", tpl)
	}
	return msgs, nil
}
