package catalog

const debuggerAdvice = "Remove debugger statement before committing."

var builtins = map[string][]EscapePattern{
	"rust": {
		{
			Name:    "unsafe",
			Pattern: `unsafe\s*\{`,
			Action:  ActionComment,
			Comment: "// SAFETY:",
			Advice:  "Add a // SAFETY: comment explaining the invariants.",
		},
		{
			Name:    "transmute",
			Pattern: `mem::transmute`,
			Action:  ActionComment,
			Comment: "// SAFETY:",
			Advice:  "Add a // SAFETY: comment explaining type compatibility.",
		},
	},
	"go": {
		{
			Name:    "unsafe_pointer",
			Pattern: `unsafe\.Pointer`,
			Action:  ActionComment,
			Comment: "// SAFETY:",
			Advice:  "Add a // SAFETY: comment explaining pointer validity.",
		},
		{
			Name:    "go_linkname",
			Pattern: `//go:linkname`,
			Action:  ActionComment,
			Comment: "// LINKNAME:",
			Advice:  "Add a // LINKNAME: comment explaining the external symbol dependency.",
		},
		{
			Name:    "go_noescape",
			Pattern: `//go:noescape`,
			Action:  ActionComment,
			Comment: "// NOESCAPE:",
			Advice:  "Add a // NOESCAPE: comment explaining why escape analysis should be bypassed.",
		},
	},
	"shell": {
		{
			Name:    "set_plus_e",
			Pattern: `set \+e`,
			Action:  ActionComment,
			Comment: "# OK:",
			Advice:  "Most bash scripts should use 'set -e' to exit on errors. " +
				"Consider adding it to this script. " +
				"If error checking was intentionally disabled, add a # OK: comment explaining why.",
		},
		{
			Name:    "eval",
			Pattern: `\beval\s`,
			Action:  ActionComment,
			Comment: "# OK:",
			Advice:  "eval can execute arbitrary code and is a common source of injection vulnerabilities. " +
				"If this usage is safe, add a # OK: comment explaining why.",
		},
	},
	"javascript": {
		{
			Name:    "as_unknown",
			Pattern: `as\s+unknown`,
			Action:  ActionComment,
			Comment: "// CAST:",
			Advice:  "Add a // CAST: comment explaining why the type assertion is necessary.",
		},
		{
			Name:    "ts_ignore",
			Pattern: `@ts-ignore`,
			Action:  ActionForbid,
			Advice:  "@ts-ignore is forbidden. Use @ts-expect-error instead, which fails if the error is resolved.",
		},
	},
	"python": {
		{
			Name:    "breakpoint",
			Pattern: `\bbreakpoint\s*\(`,
			Action:  ActionForbid,
			Advice:  "Remove breakpoint() before committing.",
			InTests: TestForbid,
		},
		{
			Name:    "pdb_set_trace",
			Pattern: `\bpdb\.set_trace\s*\(`,
			Action:  ActionForbid,
			Advice:  "Remove pdb.set_trace() before committing.",
			InTests: TestForbid,
		},
		{
			// (?m): ^ は行頭
			Name:    "import_pdb",
			Pattern: `(?m)^[ \t]*import\s+pdb\b`,
			Action:  ActionForbid,
			Advice:  "Remove import pdb before committing.",
			InTests: TestForbid,
		},
		{
			Name:    "from_pdb",
			Pattern: `(?m)^[ \t]*from\s+pdb\s+import\b`,
			Action:  ActionForbid,
			Advice:  "Remove pdb import before committing.",
			InTests: TestForbid,
		},
		{
			Name:    "eval",
			Pattern: `\beval\s*\(`,
			Action:  ActionComment,
			Comment: "# EVAL:",
			Advice:  "Add a # EVAL: comment explaining why eval is necessary.",
		},
		{
			Name:    "exec",
			Pattern: `\bexec\s*\(`,
			Action:  ActionComment,
			Comment: "# EXEC:",
			Advice:  "Add a # EXEC: comment explaining why exec is necessary.",
		},
		{
			Name:    "__import__",
			Pattern: `\b__import__\s*\(`,
			Action:  ActionComment,
			Comment: "# DYNAMIC:",
			Advice:  "Add a # DYNAMIC: comment explaining why __import__ is necessary.",
		},
		{
			Name:    "compile",
			Pattern: `\bcompile\s*\(`,
			Action:  ActionComment,
			Comment: "# DYNAMIC:",
			Advice:  "Add a # DYNAMIC: comment explaining why compile is necessary for code execution.",
		},
	},
	"ruby": {
		{Name: "binding_pry", Pattern: `binding\.pry`, Action: ActionForbid, Advice: debuggerAdvice, InTests: TestForbid},
		{Name: "byebug", Pattern: `\bbyebug\b`, Action: ActionForbid, Advice: debuggerAdvice, InTests: TestForbid},
		{Name: "debugger", Pattern: `\bdebugger\b`, Action: ActionForbid, Advice: debuggerAdvice, InTests: TestForbid},
		{
			Name:    "eval",
			Pattern: `\beval\s*\(`,
			Action:  ActionComment,
			Comment: "# METAPROGRAMMING:",
			Advice:  "Add a # METAPROGRAMMING: comment explaining why eval is necessary.",
		},
		{
			Name:    "instance_eval",
			Pattern: `\.instance_eval\b`,
			Action:  ActionComment,
			Comment: "# METAPROGRAMMING:",
			Advice:  "Add a # METAPROGRAMMING: comment explaining the DSL or metaprogramming use case.",
		},
		{
			Name:    "class_eval",
			Pattern: `\.class_eval\b`,
			Action:  ActionComment,
			Comment: "# METAPROGRAMMING:",
			Advice:  "Add a # METAPROGRAMMING: comment explaining the metaprogramming use case.",
		},
	},
}
