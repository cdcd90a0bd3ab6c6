// Copyright 2020-2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"fmt"
	"os"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

const debugAnalyzerKey = "DEBUG_ANALYZER"

const maxAnalysisIterations = 1000

// ErrMaxAnalysisIters is thrown when the analysis iterations are exceeded
var ErrMaxAnalysisIters = errors.NewKind("exceeded max analysis iterations (%d)")

// ErrInvalidNodeType is thrown when the analyzer can't handle a particular kind of node type
var ErrInvalidNodeType = errors.NewKind("%s: invalid node of type: %T")

// Builder provides an easy way to generate Analyzer with custom rules and options.
type Builder struct {
	postAnalyzeRules    []Rule
	postValidationRules []Rule
	registry            sql.FunctionRegistry
	folder              sql.ConstantFolder
	debug               bool
	verbose             bool
	maxIterations       int
	sqlMode             string
}

// NewBuilder creates a new Builder over a function registry.
// This builder allow us add custom Rules and modify some internal properties.
func NewBuilder(registry sql.FunctionRegistry) *Builder {
	return &Builder{
		registry:      registry,
		folder:        expression.LiteralFolder{},
		maxIterations: maxAnalysisIterations,
	}
}

// WithDebug activates debug on the Analyzer.
func (ab *Builder) WithDebug() *Builder {
	ab.debug = true
	return ab
}

// WithFolder sets the constant folder of the analyzer. A nil folder
// disables constant folding.
func (ab *Builder) WithFolder(folder sql.ConstantFolder) *Builder {
	ab.folder = folder
	return ab
}

// WithConfig applies the options of a configuration file.
func (ab *Builder) WithConfig(cfg *Config) *Builder {
	if cfg == nil {
		return ab
	}
	ab.debug = ab.debug || cfg.Debug
	ab.verbose = cfg.Verbose
	if cfg.MaxIterations > 0 {
		ab.maxIterations = cfg.MaxIterations
	}
	ab.sqlMode = cfg.SqlMode
	return ab
}

// AddPostAnalyzeRule adds a new rule to the analyzer after standard analyzer rules.
func (ab *Builder) AddPostAnalyzeRule(match func(sql.Node) bool, fn RuleFunc) *Builder {
	ab.postAnalyzeRules = append(ab.postAnalyzeRules, Rule{customRuleId, match, fn})
	return ab
}

// AddPostValidationRule adds a new rule to the analyzer after standard validation rules.
func (ab *Builder) AddPostValidationRule(match func(sql.Node) bool, fn RuleFunc) *Builder {
	ab.postValidationRules = append(ab.postValidationRules, Rule{customRuleId, match, fn})
	return ab
}

// Build creates a new Analyzer using all previous data setted to the Builder
func (ab *Builder) Build() *Analyzer {
	_, debug := os.LookupEnv(debugAnalyzerKey)
	var batches = []*Batch{
		{
			Desc:       "bind",
			Iterations: ab.maxIterations,
			Rules:      DefaultRules,
		},
		{
			Desc:       "post-analyzer",
			Iterations: ab.maxIterations,
			Rules:      ab.postAnalyzeRules,
		},
		{
			Desc:       "validation",
			Iterations: 1,
			Rules:      DefaultValidationRules,
		},
		{
			Desc:       "post-validation",
			Iterations: 1,
			Rules:      ab.postValidationRules,
		},
	}

	sqlMode := ab.sqlMode
	if sqlMode == "" {
		sqlMode = sql.DefaultSqlMode
	}

	return &Analyzer{
		Debug:    debug || ab.debug,
		Verbose:  ab.verbose,
		debugCtx: make([]string, 0),
		Batches:  batches,
		Registry: ab.registry,
		Folder:   ab.folder,
		SqlMode:  sqlMode,
	}
}

// Analyzer binds the names of a logical plan by applying the rules of its
// batches, and validates the result.
type Analyzer struct {
	// Whether to log various debugging messages
	Debug bool
	// Whether to output the query plan at each step of the analyzer
	Verbose  bool
	debugCtx []string
	// Batches of Rules to apply.
	Batches []*Batch
	// Registry of the functions calls are bound to.
	Registry sql.FunctionRegistry
	// Folder folds the constant expressions produced by binding, if set.
	Folder sql.ConstantFolder
	// SqlMode is the SQL mode of sessions created for this analyzer.
	SqlMode string
}

// NewDefault creates a default Analyzer instance with all default Rules and configuration.
// To add custom rules, the easiest way is use the Builder.
func NewDefault(registry sql.FunctionRegistry) *Analyzer {
	return NewBuilder(registry).Build()
}

// Fork returns a copy of the analyzer with its own debug context, to be
// used by a single goroutine.
func (a *Analyzer) Fork() *Analyzer {
	na := *a
	na.debugCtx = make([]string, 0, len(a.debugCtx))
	return &na
}

// Log prints an INFO message to stdout with the given message and args
// if the analyzer is in debug mode.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a != nil && a.Debug {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			logrus.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			logrus.Infof(msg, args...)
		}
	}
}

// LogNode prints the node given if Verbose logging is enabled.
func (a *Analyzer) LogNode(n sql.Node) {
	if a != nil && n != nil && a.Verbose {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			logrus.Infof("%s:\n%s", ctx, sql.DebugString(n))
		} else {
			logrus.Infof("%s", sql.DebugString(n))
		}
	}
}

// PushDebugContext pushes the given context string onto the context stack, to use when logging debug messages.
func (a *Analyzer) PushDebugContext(msg string) {
	if a != nil && a.Debug {
		a.debugCtx = append(a.debugCtx, msg)
	}
}

// PopDebugContext pops a context message off the context stack.
func (a *Analyzer) PopDebugContext() {
	if a != nil && len(a.debugCtx) > 0 {
		a.debugCtx = a.debugCtx[:len(a.debugCtx)-1]
	}
}

// Analyze the node and all its children.
func (a *Analyzer) Analyze(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	span, ctx := ctx.Span("analyze", opentracing.Tags{
		"plan": n.String(),
	})

	var (
		result sql.Node
		err    error
	)
	defer func() {
		if result != nil {
			span.SetTag("IsResolved", result.Resolved())
		}
		span.Finish()
	}()

	if n.Resolved() {
		result = n
		return result, nil
	}

	a.Log("starting analysis of node of type: %T", n)
	result, err = a.analyzeWithScope(ctx, n, nil)
	return result, err
}

// analyzeWithScope runs every batch over the node given. Subqueries are
// analyzed with the scope of their enclosing query.
func (a *Analyzer) analyzeWithScope(ctx *sql.Context, n sql.Node, scope *Scope) (sql.Node, error) {
	if scope != nil {
		a.PushDebugContext("subquery")
		defer a.PopDebugContext()
	}

	prev := n
	for _, batch := range a.Batches {
		a.PushDebugContext(batch.Desc)
		cur, _, err := batch.Eval(ctx, a, prev, scope)
		a.PopDebugContext()
		if err != nil {
			if ErrMaxAnalysisIters.Is(err) {
				a.Log(err.Error())
			}
			return nil, err
		}
		prev = cur
	}
	return prev, nil
}

// Describe returns the name of the batches and rules of the analyzer.
func (a *Analyzer) Describe() string {
	var sb strings.Builder
	for _, b := range a.Batches {
		fmt.Fprintf(&sb, "%s (%d):", b.Desc, b.Iterations)
		for _, r := range b.Rules {
			fmt.Fprintf(&sb, " %s", r.Id)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

