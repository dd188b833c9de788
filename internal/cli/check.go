package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-cfgconv"
	"github.com/KimNorgaard/go-cfgconv/hclsource"
	"github.com/KimNorgaard/go-cfgconv/internal/formatter"
)

// slot is one key the document is checked for.
type slot struct {
	key    string
	expr   string
	parser cfgconv.OptionalParser[any]
}

// parseSlots resolves every --require and --optional flag. All bad flags
// are reported together.
func parseSlots(c *cfgconv.Catalog, opts options) ([]slot, error) {
	var slots []slot
	var problems []string
	add := func(flag string, args []string, lift func(cfgconv.Parser[any]) cfgconv.OptionalParser[any]) {
		for _, arg := range args {
			key, expr, ok := strings.Cut(arg, "=")
			key, expr = strings.TrimSpace(key), strings.TrimSpace(expr)
			if !ok || key == "" || expr == "" {
				problems = append(problems, fmt.Sprintf("--%s %q: expected key=type", flag, arg))
				continue
			}
			p, err := c.Resolve(expr)
			if err != nil {
				problems = append(problems, fmt.Sprintf("--%s %s: %v", flag, key, err))
				continue
			}
			slots = append(slots, slot{key: key, expr: p.Type().String(), parser: lift(p)})
		}
	}
	add("require", opts.require, cfgconv.Required[any])
	add("optional", opts.optional, cfgconv.Optional[any])

	if len(problems) > 0 {
		return nil, usageError("%s", strings.Join(problems, "\n"))
	}
	if len(slots) == 0 && !opts.dump {
		return nil, usageError("nothing to check: pass --dump or at least one --require or --optional")
	}
	return slots, nil
}

// check decodes every slot of the file at path and prints the decoded
// values and every diagnostic. It fails with exit code 1 when the file
// cannot be loaded or a slot did not decode.
func check(ctx context.Context, logger *slog.Logger, path string, slots []slot, dumpDoc bool, out io.Writer) error {
	doc, err := hclsource.Load(path)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	logger.Debug("Document loaded.", "file", path, "attributes", len(doc.Keys()))

	if dumpDoc {
		if err := dump(doc, out); err != nil {
			return err
		}
	}

	failed := 0
	for _, s := range slots {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, present := doc.Lookup(s.key)
		payload, ok, errs := s.parser.Run(v, present)

		location := path
		if rng, found := doc.Range(s.key); found {
			location = fmt.Sprintf("%s:%d", path, rng.Start.Line)
		}
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %s: %s\n", location, s.key, e.Error())
		}

		switch {
		case ok:
			fmt.Fprintf(out, "%s = %v\n", s.key, payload)
			logger.Debug("Slot decoded.", "key", s.key, "type", s.expr, "diagnostics", len(errs))
		case !present && len(errs) == 0:
			logger.Info("Optional slot absent.", "key", s.key, "type", s.expr)
		default:
			failed++
			logger.Debug("Slot failed.", "key", s.key, "type", s.expr, "diagnostics", len(errs))
		}
	}

	if failed > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%s: %d of %d slots failed", path, failed, len(slots))}
	}
	return nil
}

// dump prints every attribute of doc as key = value, in source order.
func dump(doc *hclsource.Document, out io.Writer) error {
	f := formatter.New(out, nil)
	for _, key := range doc.Keys() {
		v, _ := doc.Lookup(key)
		if _, err := fmt.Fprintf(out, "%s = ", key); err != nil {
			return err
		}
		if err := f.Format(v); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}
