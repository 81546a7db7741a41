// Package conformance runs YAML-described programs end to end and checks
// their result, output and diagnostics.
package conformance

// Suite is one YAML file.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Stage       int    `yaml:"stage"`
	Scheduler   string `yaml:"scheduler,omitempty"`
	Cases       []Case `yaml:"tests"`
}

// Case is a single program and what running it must produce.
type Case struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description,omitempty"`
	Skip         string      `yaml:"skip,omitempty"`
	Stage        int         `yaml:"stage,omitempty"` // overrides the suite stage
	Scheduler    string      `yaml:"scheduler,omitempty"` // overrides the suite scheduler
	Source       string      `yaml:"source"`
	Steps        int         `yaml:"steps,omitempty"`
	MaxTicks     int         `yaml:"max_ticks,omitempty"`
	MaxCallDepth int         `yaml:"max_call_depth,omitempty"`
	Expect       Expectation `yaml:"expect"`
}

// Expectation fields left empty are not checked.
type Expectation struct {
	Status string          `yaml:"status,omitempty"` // finished or error
	Value  *string         `yaml:"value,omitempty"`  // stringified result
	Output *string         `yaml:"output,omitempty"`
	Errors []ExpectedError `yaml:"errors,omitempty"`
}

// ExpectedError matches one diagnostic, in order. Explain is a substring.
type ExpectedError struct {
	Type     string `yaml:"type,omitempty"`     // Syntax, Type or Runtime
	Severity string `yaml:"severity,omitempty"` // Warning or Error
	Line     int    `yaml:"line,omitempty"`
	Explain  string `yaml:"explain,omitempty"`
}

func (c *Case) stage(s *Suite) int {
	if c.Stage != 0 {
		return c.Stage
	}
	return s.Stage
}

func (c *Case) scheduler(s *Suite) string {
	if c.Scheduler != "" {
		return c.Scheduler
	}
	return s.Scheduler
}
