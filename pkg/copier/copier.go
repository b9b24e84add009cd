// Package copier copies GitHub comments and issues between repositories,
// translating their text on the way.
package copier

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zapier/ghcopy/pkg/translate"
	"github.com/zapier/ghcopy/pkg/vcs"
)

var tracer = otel.Tracer("pkg/copier")

type Copier struct {
	reader     vcs.IssueReader
	translator translate.Translator
	out        io.Writer
}

func New(reader vcs.IssueReader, translator translate.Translator, out io.Writer) *Copier {
	return &Copier{
		reader:     reader,
		translator: translator,
		out:        out,
	}
}

type setting struct {
	name, value string
}

// requireSettings fails with ErrValidation naming every empty setting.
func requireSettings(settings ...setting) error {
	var missing []string
	for _, s := range settings {
		if s.value == "" {
			missing = append(missing, s.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.Wrap(ErrValidation, fmt.Sprintf("missing required settings: %s", strings.Join(missing, ", ")))
}

func notFound(what string, err error) error {
	if err == nil {
		return errors.Wrap(ErrNotFound, what)
	}
	return fmt.Errorf("%s: %w: %w", what, ErrNotFound, err)
}
