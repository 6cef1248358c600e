package golang

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/dsmgraph/dsm-analyzer/internal/types"
)

// workspaceConfigFile is the optional HCL document a repository can carry to
// extend the resolver beyond its built-in heuristics.
const workspaceConfigFile = ".dsmconfig.hcl"

// WorkspaceConfig is repo-supplied analyzer configuration, read once per run
// and threaded into analyzer.Options rather than consulted per file.
type WorkspaceConfig struct {
	ExtraIncludeRoots []string
}

var workspaceConfigSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "extra_include_roots"},
	},
}

// LoadWorkspaceConfig reads .dsmconfig.hcl from the repository root, if
// present. A missing or malformed file yields a zero-value config, never an
// error: this is an opt-in enrichment, not a required input.
func LoadWorkspaceConfig(provider types.Provider) *WorkspaceConfig {
	cfg := &WorkspaceConfig{}
	content, err := provider.Open(workspaceConfigFile)
	if err != nil {
		return cfg
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(content), workspaceConfigFile)
	if diags.HasErrors() || file == nil {
		return cfg
	}

	body, _, diags := file.Body.PartialContent(workspaceConfigSchema)
	if diags.HasErrors() {
		return cfg
	}

	attr, ok := body.Attributes["extra_include_roots"]
	if !ok {
		return cfg
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || !val.CanIterateElements() {
		return cfg
	}
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.Type() == cty.String {
			cfg.ExtraIncludeRoots = append(cfg.ExtraIncludeRoots, v.AsString())
		}
	}
	return cfg
}
