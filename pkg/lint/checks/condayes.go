package checks

import (
	"fmt"
	"path/filepath"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
	"mvdan.cc/sh/v3/syntax"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// Conda subcommands that prompt for confirmation unless -y/--yes is
// given.
var interactiveCondaCommands = map[string]bool{
	"clean":     true,
	"create":    true,
	"install":   true,
	"remove":    true,
	"uninstall": true,
	"update":    true,
	"upgrade":   true,
}

// Global conda flags that may precede the subcommand word.
var condaPreCommandWords = map[string]bool{
	"conda":        true,
	"-h":           true,
	"--help":       true,
	"--no-plugins": true,
	"-V":           true,
}

// CondaYes verifies that interactive conda invocations in shell scripts
// carry -y or --yes, so CI runs never hang on a confirmation prompt. The
// fix inserts " -y" after the subcommand.
type CondaYes struct {
	lint.BaseCheck
}

// NewCondaYes creates the conda-yes check.
func NewCondaYes() *CondaYes {
	return &CondaYes{
		BaseCheck: lint.NewBaseCheck(
			"conda-yes",
			"Verify that conda commands in shell scripts are non-interactive.",
			[]string{"shell"},
			true,
			`\.(sh|bash)$`,
		),
	}
}

func (c *CondaYes) Apply(ctx *lint.CheckContext) error {
	linter := ctx.Linter
	content := linter.Content()

	// The file pattern is a coarse filter; language detection weeds out
	// the occasional non-shell file with a shell extension.
	if lang := enry.GetLanguage(filepath.Base(linter.Path), []byte(content)); lang != "" && lang != "Shell" {
		return nil
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(content), linter.Path)
	if err != nil {
		return fmt.Errorf("parse shell: %w", err)
	}

	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok {
			return true
		}
		checkCondaCall(linter, call)
		return true
	})
	return nil
}

func checkCondaCall(linter *lint.Linter, call *syntax.CallExpr) {
	words := make([]string, len(call.Args))
	for i, arg := range call.Args {
		words[i] = arg.Lit()
	}
	if len(words) == 0 || words[0] != "conda" {
		return
	}

	// The subcommand is the first word that is not the program name or a
	// global flag.
	cmdIndex := -1
	for i, word := range words {
		if !condaPreCommandWords[word] {
			cmdIndex = i
			break
		}
	}
	if cmdIndex < 0 {
		return
	}
	// Help and version requests never reach a prompt.
	for _, word := range words[1:cmdIndex] {
		if word == "-h" || word == "--help" || word == "-V" {
			return
		}
	}

	if !interactiveCondaCommands[words[cmdIndex]] {
		return
	}
	for _, word := range words[cmdIndex:] {
		if word == "-y" || word == "--yes" {
			return
		}
	}

	span := source.Span{
		Start: int(call.Args[0].Pos().Offset()),
		End:   int(call.Args[cmdIndex].End().Offset()),
	}
	linter.AddWarning(span, "add -y argument").
		AddReplacement(source.Span{Start: span.End, End: span.End}, " -y")
}
