package checks

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// AlphaSpecifier is the prerelease version specifier that development
// dependency lists must carry and release lists must not.
const AlphaSpecifier = ">=0.0.0a0"

var cudaSuffixRE = regexp.MustCompile(`^(.*)-cu[0-9]{2}$`)

// AlphaSpec verifies the alpha specifier on prerelease packages in
// dependency list files. In development mode the specifier is required,
// in release mode it is forbidden; the fix rewrites the requirement with
// the specifier set merged accordingly.
type AlphaSpec struct {
	lint.BaseCheck
}

// NewAlphaSpec creates the alpha-spec check.
func NewAlphaSpec() *AlphaSpec {
	return &AlphaSpec{
		BaseCheck: lint.NewBaseCheck(
			"alpha-spec",
			"Verify that prerelease packages in dependency lists do (or do not) have the alpha specifier.",
			[]string{"dependencies"},
			true,
			`(^|/)dependencies\.yaml$`,
		),
	}
}

// DefaultEnabled is false: the check needs a configured package list.
func (c *AlphaSpec) DefaultEnabled() bool {
	return false
}

// alphaSpecState carries the per-run settings and the set of anchors
// already visited, so anchored nodes are checked once no matter how many
// aliases refer to them.
type alphaSpecState struct {
	linter      *lint.Linter
	development bool
	packages    map[string]bool
	cudaPkgs    map[string]bool
	usedAnchors map[string]bool
}

func (c *AlphaSpec) Apply(ctx *lint.CheckContext) error {
	mode := ctx.OptionString("mode", "development")
	if mode != "development" && mode != "release" {
		return fmt.Errorf("invalid mode %q (want development or release)", mode)
	}

	state := &alphaSpecState{
		linter:      ctx.Linter,
		development: mode == "development",
		packages:    stringSet(ctx.OptionStringSlice("packages", nil)),
		cudaPkgs:    stringSet(ctx.OptionStringSlice("cuda_suffixed_packages", nil)),
		usedAnchors: make(map[string]bool),
	}
	if len(state.packages) == 0 {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(ctx.Linter.Content()), &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}

	state.checkRoot(doc.Content[0])
	return nil
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// mappingValue returns the value node for a string key of a mapping, or
// nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return v
		}
	}
	return nil
}

func (s *alphaSpecState) checkRoot(node *yaml.Node) {
	if deps := mappingValue(node, "dependencies"); deps != nil {
		s.checkDependencies(deps)
	}
}

func (s *alphaSpecState) checkDependencies(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 1; i < len(node.Content); i += 2 {
		depSet := node.Content[i]
		if common := mappingValue(depSet, "common"); common != nil {
			s.checkCommon(common)
		}
		if specific := mappingValue(depSet, "specific"); specific != nil {
			s.checkSpecific(specific)
		}
	}
}

func (s *alphaSpecState) checkCommon(node *yaml.Node) {
	if node.Kind != yaml.SequenceNode {
		return
	}
	for _, depSet := range node.Content {
		if packages := mappingValue(depSet, "packages"); packages != nil {
			s.checkPackages(packages)
		}
	}
}

func (s *alphaSpecState) checkSpecific(node *yaml.Node) {
	if node.Kind != yaml.SequenceNode {
		return
	}
	for _, matcher := range node.Content {
		if matrices := mappingValue(matcher, "matrices"); matrices != nil {
			s.checkMatrices(matrices)
		}
	}
}

func (s *alphaSpecState) checkMatrices(node *yaml.Node) {
	if node.Kind != yaml.SequenceNode {
		return
	}
	for _, item := range node.Content {
		if packages := mappingValue(item, "packages"); packages != nil {
			s.checkPackages(packages)
		}
	}
}

func (s *alphaSpecState) checkPackages(node *yaml.Node) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode || !s.markAnchor(node) {
		return
	}
	for _, spec := range node.Content {
		s.checkPackageSpec(spec)
	}
}

// resolveAlias follows an alias to its anchored node so aliased lists
// are walked at their definition site.
func resolveAlias(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

// markAnchor returns false when the node carries an anchor that was
// already visited.
func (s *alphaSpecState) markAnchor(node *yaml.Node) bool {
	if node.Anchor != "" {
		if s.usedAnchors[node.Anchor] {
			return false
		}
		s.usedAnchors[node.Anchor] = true
	}
	return true
}

func (s *alphaSpecState) checkPackageSpec(node *yaml.Node) {
	node = resolveAlias(node)
	// Only plain-style scalars have a reconstructible span; quoted or
	// folded entries are left alone.
	if node.Kind != yaml.ScalarNode || node.Style != 0 || node.Tag != "!!str" {
		return
	}

	req, ok := parseRequirement(node.Value)
	if !ok {
		return
	}
	if !s.packages[s.stripCudaSuffix(req.name)] {
		return
	}
	if !s.markAnchor(node) {
		return
	}

	span, ok := scalarSpan(s.linter, node)
	if !ok {
		return
	}

	hasAlpha := slices.Contains(req.specifiers, AlphaSpecifier)
	switch {
	case s.development && !hasAlpha:
		s.linter.AddWarning(span,
			fmt.Sprintf("add alpha spec for prerelease package %s", req.name)).
			AddReplacement(span, req.name+joinSpecifiers(req.specifiers, AlphaSpecifier, true))
	case !s.development && hasAlpha:
		s.linter.AddWarning(span,
			fmt.Sprintf("remove alpha spec for prerelease package %s", req.name)).
			AddReplacement(span, req.name+joinSpecifiers(req.specifiers, AlphaSpecifier, false))
	}
}

func (s *alphaSpecState) stripCudaSuffix(name string) string {
	if m := cudaSuffixRE.FindStringSubmatch(name); m != nil && s.cudaPkgs[m[1]] {
		return m[1]
	}
	return name
}

// scalarSpan converts a scalar node's line/column position into a byte
// span over the buffer.
func scalarSpan(linter *lint.Linter, node *yaml.Node) (source.Span, bool) {
	if node.Line < 1 || node.Line > len(linter.Lines.Spans) {
		return source.Span{}, false
	}
	start := linter.Lines.Spans[node.Line-1].Start + node.Column - 1
	end := start + len(node.Value)
	if end > len(linter.Content()) {
		return source.Span{}, false
	}
	return source.Span{Start: start, End: end}, true
}

type requirement struct {
	name       string
	specifiers []string
}

var requirementNameRE = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)(.*)$`)
var specifierRE = regexp.MustCompile(`^(===|==|!=|<=|>=|~=|<|>)\s*[^\s,]+$`)

// parseRequirement splits "name>=1.0,<2.0" into its package name and
// normalized specifier list. Anything fancier (extras, markers, URLs) is
// not a requirement this check rewrites.
func parseRequirement(value string) (requirement, bool) {
	m := requirementNameRE.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return requirement{}, false
	}
	req := requirement{name: m[1]}

	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return req, true
	}
	for _, spec := range strings.Split(rest, ",") {
		spec = strings.TrimSpace(spec)
		if !specifierRE.MatchString(spec) {
			return requirement{}, false
		}
		req.specifiers = append(req.specifiers, strings.ReplaceAll(spec, " ", ""))
	}
	return req, true
}

// joinSpecifiers merges the alpha specifier in or out of a specifier set
// and renders it with the alpha specifier sorted last and the rest
// ordered by their version text.
func joinSpecifiers(specs []string, alpha string, include bool) string {
	set := make(map[string]bool, len(specs)+1)
	for _, spec := range specs {
		set[spec] = true
	}
	if include {
		set[alpha] = true
	} else {
		delete(set, alpha)
	}

	merged := make([]string, 0, len(set))
	for spec := range set {
		merged = append(merged, spec)
	}
	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a == b {
			return false
		}
		if a == alpha {
			return false
		}
		if b == alpha {
			return true
		}
		return stripOperators(a) < stripOperators(b)
	})
	return strings.Join(merged, ",")
}

func stripOperators(spec string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '=':
			return -1
		}
		return r
	}, spec)
}
