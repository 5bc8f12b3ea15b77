package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/utils/text"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// RecordOutput is the JSON form of a stored summary.
type RecordOutput struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	Length    string    `json:"length"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	Filename  string    `json:"filename,omitempty"`
	SourceURL string    `json:"source_url,omitempty"`
}

// BatchOutput is one line of batch output.
type BatchOutput struct {
	*RecordOutput
	Error string `json:"error,omitempty"`
}

func toOutput(rec *entity.SummaryRecord) *RecordOutput {
	return &RecordOutput{
		ID:        rec.ID,
		Text:      rec.Text,
		Summary:   rec.Summary,
		Length:    string(rec.Length),
		CreatedAt: rec.CreatedAt,
		UserID:    rec.OwnerID,
		Filename:  rec.Provenance.Filename,
		SourceURL: rec.Provenance.URL,
	}
}

type actions struct {
	setup setupFunc
}

// with runs fn against a fresh runtime and releases it afterwards.
func (a *actions) with(c *cli.Context, fn func(rt *runtime) error) error {
	rt, err := a.setup(c.Context)
	if err != nil {
		return err
	}
	if rt.Close != nil {
		defer func() { _ = rt.Close() }()
	}
	return fn(rt)
}

func (a *actions) summarize(c *cli.Context, in sumUC.Input) error {
	tier, err := entity.ParseLengthTier(c.String("length"))
	if err != nil {
		return err
	}
	return a.with(c, func(rt *runtime) error {
		rec, err := rt.Service.Summarize(c.Context, in, tier, c.String("user"))
		if err != nil {
			return err
		}
		return printRecord(c, rec)
	})
}

func (a *actions) text(c *cli.Context) error {
	body := strings.Join(c.Args().Slice(), " ")
	if c.NArg() == 0 {
		b, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = string(b)
	}
	return a.summarize(c, sumUC.TextInput{Text: body})
}

func (a *actions) file(c *cli.Context) error {
	if c.NArg() != 1 {
		return entity.ValidationError("file requires exactly one path")
	}
	path := c.Args().First()
	// #nosec G304 -- the path is supplied by the operator on the command line
	f, err := os.Open(path)
	if err != nil {
		return entity.ValidationError(fmt.Sprintf("Cannot open file %s", path))
	}
	defer f.Close()
	return a.summarize(c, sumUC.FileInput{Filename: filepath.Base(path), Content: f})
}

func (a *actions) url(c *cli.Context) error {
	if c.NArg() != 1 {
		return entity.ValidationError("url requires exactly one URL")
	}
	return a.summarize(c, sumUC.URLInput{URL: c.Args().First()})
}

func (a *actions) batch(c *cli.Context) error {
	tier, err := entity.ParseLengthTier(c.String("length"))
	if err != nil {
		return err
	}

	r := c.App.Reader
	if c.NArg() > 0 {
		// #nosec G304 -- the path is supplied by the operator on the command line
		f, err := os.Open(c.Args().First())
		if err != nil {
			return entity.ValidationError(fmt.Sprintf("Cannot open file %s", c.Args().First()))
		}
		defer f.Close()
		r = f
	}

	var items []sumUC.BatchItem
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		if line := sc.Text(); !text.IsBlank(line) {
			items = append(items, sumUC.TextItem{Text: line})
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read batch input: %w", err)
	}

	return a.with(c, func(rt *runtime) error {
		results, err := rt.Service.SummarizeBatch(c.Context, items, tier, c.String("user"))
		if err != nil {
			return err
		}
		out := make([]BatchOutput, len(results))
		for i, res := range results {
			if res.Err != nil {
				out[i] = BatchOutput{Error: entity.PublicMessage(res.Err)}
				continue
			}
			out[i] = BatchOutput{RecordOutput: toOutput(res.Record)}
		}
		if c.String("output") == "json" {
			return writeJSON(c.App.Writer, map[string]any{"processed": len(out), "results": out})
		}
		for i, o := range out {
			if o.Error != "" {
				fmt.Fprintf(c.App.Writer, "[%d] error: %s\n", i+1, o.Error)
				continue
			}
			fmt.Fprintf(c.App.Writer, "[%d] %s\n", i+1, o.Summary)
		}
		return nil
	})
}

func (a *actions) token(c *cli.Context) error {
	if c.NArg() != 1 {
		return entity.ValidationError("token requires exactly one user id")
	}
	return a.with(c, func(rt *runtime) error {
		tok, err := rt.Tokens.Issue(c.Args().First())
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, tok)
		return nil
	})
}

func printRecord(c *cli.Context, rec *entity.SummaryRecord) error {
	if c.String("output") == "json" {
		return writeJSON(c.App.Writer, toOutput(rec))
	}
	_, err := fmt.Fprintln(c.App.Writer, rec.Summary)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
