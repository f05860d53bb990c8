package analyzer

// StackRule maps README keywords to a technology name.
type StackRule struct {
	Technology string
	Keywords   []string
}

// stackRules is matched against case-folded README text at word boundaries.
var stackRules = []StackRule{
	{Technology: "Docker", Keywords: []string{"docker", "dockerfile", "docker-compose", "docker compose"}},
	{Technology: "Kubernetes", Keywords: []string{"kubernetes", "k8s", "kubectl", "helm"}},
	{Technology: "Terraform", Keywords: []string{"terraform"}},
	{Technology: "Python", Keywords: []string{"python", "pip install", "pipenv", "pytest", "pypi", "conda", "virtualenv", "venv"}},
	{Technology: "FastAPI", Keywords: []string{"fastapi"}},
	{Technology: "Flask", Keywords: []string{"flask"}},
	{Technology: "Django", Keywords: []string{"django"}},
	{Technology: "JavaScript", Keywords: []string{"javascript", "npm", "npx", "yarn", "pnpm"}},
	{Technology: "Node.js", Keywords: []string{"node.js", "nodejs"}},
	{Technology: "TypeScript", Keywords: []string{"typescript", "ts-node"}},
	{Technology: "React", Keywords: []string{"react", "reactjs", "react.js"}},
	{Technology: "Next.js", Keywords: []string{"next.js", "nextjs"}},
	{Technology: "Vue", Keywords: []string{"vue", "vue.js", "vuejs", "nuxt"}},
	{Technology: "Angular", Keywords: []string{"angular"}},
	{Technology: "Svelte", Keywords: []string{"svelte", "sveltekit"}},
	{Technology: "Express", Keywords: []string{"express.js", "expressjs"}},
	{Technology: "Go", Keywords: []string{"golang", "go build", "go run", "go install", "go test", "go get", "go.mod"}},
	{Technology: "Rust", Keywords: []string{"rust", "cargo"}},
	{Technology: "Java", Keywords: []string{"java", "maven", "gradle"}},
	{Technology: "Spring", Keywords: []string{"spring boot", "spring-boot"}},
	{Technology: "Kotlin", Keywords: []string{"kotlin"}},
	{Technology: "Ruby", Keywords: []string{"ruby", "bundler", "gem install"}},
	{Technology: "Rails", Keywords: []string{"rails"}},
	{Technology: "PHP", Keywords: []string{"php", "composer"}},
	{Technology: "Laravel", Keywords: []string{"laravel"}},
	{Technology: ".NET", Keywords: []string{"dotnet", ".net", "nuget"}},
	{Technology: "PostgreSQL", Keywords: []string{"postgres", "postgresql"}},
	{Technology: "MySQL", Keywords: []string{"mysql", "mariadb"}},
	{Technology: "SQLite", Keywords: []string{"sqlite"}},
	{Technology: "MongoDB", Keywords: []string{"mongodb"}},
	{Technology: "Redis", Keywords: []string{"redis"}},
	{Technology: "GraphQL", Keywords: []string{"graphql"}},
}

// languageTags maps code block info strings to languages.
var languageTags = map[string]string{
	"python":     "Python",
	"py":         "Python",
	"go":         "Go",
	"golang":     "Go",
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"jsx":        "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"tsx":        "TypeScript",
	"rust":       "Rust",
	"rs":         "Rust",
	"java":       "Java",
	"kotlin":     "Kotlin",
	"kt":         "Kotlin",
	"ruby":       "Ruby",
	"rb":         "Ruby",
	"php":        "PHP",
	"csharp":     "C#",
	"cs":         "C#",
	"c#":         "C#",
	"cpp":        "C++",
	"c++":        "C++",
	"swift":      "Swift",
	"dart":       "Dart",
	"elixir":     "Elixir",
	"scala":      "Scala",
	"hcl":        "Terraform",
	"terraform":  "Terraform",
	"dockerfile": "Docker",
	"docker":     "Docker",
}

// extensionLanguages maps file extensions mentioned in prose to languages.
var extensionLanguages = map[string]string{
	"py":    "Python",
	"go":    "Go",
	"rs":    "Rust",
	"js":    "JavaScript",
	"mjs":   "JavaScript",
	"jsx":   "JavaScript",
	"ts":    "TypeScript",
	"tsx":   "TypeScript",
	"java":  "Java",
	"kt":    "Kotlin",
	"rb":    "Ruby",
	"php":   "PHP",
	"cs":    "C#",
	"cpp":   "C++",
	"cc":    "C++",
	"swift": "Swift",
	"dart":  "Dart",
	"ex":    "Elixir",
	"exs":   "Elixir",
	"scala": "Scala",
	"lua":   "Lua",
	"tf":    "Terraform",
}

// fileSignals maps repository file names (lower-case base names) to
// technologies. These come from the tree, not the README.
var fileSignals = map[string]string{
	"pyproject.toml":      "Python",
	"requirements.txt":    "Python",
	"setup.py":            "Python",
	"setup.cfg":           "Python",
	"pipfile":             "Python",
	"poetry.lock":         "Python",
	"package.json":        "JavaScript",
	"package-lock.json":   "JavaScript",
	"yarn.lock":           "JavaScript",
	"pnpm-lock.yaml":      "JavaScript",
	"tsconfig.json":       "TypeScript",
	"next.config.js":      "Next.js",
	"next.config.ts":      "Next.js",
	"vite.config.js":      "Vite",
	"vite.config.ts":      "Vite",
	"go.mod":              "Go",
	"cargo.toml":          "Rust",
	"pom.xml":             "Java",
	"build.gradle":        "Java",
	"build.gradle.kts":    "Kotlin",
	"gemfile":             "Ruby",
	"composer.json":       "PHP",
	"global.json":         ".NET",
	"dockerfile":          "Docker",
	"docker-compose.yml":  "Docker",
	"docker-compose.yaml": "Docker",
	"compose.yml":         "Docker",
	"compose.yaml":        "Docker",
	"kustomization.yaml":  "Kubernetes",
	"chart.yaml":          "Kubernetes",
}

// fileSuffixSignals are checked with strings.HasSuffix on lower-case paths.
var fileSuffixSignals = map[string]string{
	".csproj": ".NET",
	".sln":    ".NET",
	".tf":     "Terraform",
}

// runHeadingTriggers open a section whose shell blocks count as run
// instructions. Each is a regexp matched as whole words against the
// case-folded heading.
var runHeadingTriggers = []string{
	`install(?:ation|ing)?`,
	`set ?up`,
	`usage`,
	`run(?:ning)?`,
	`getting started`,
	`quick ?start`,
}

// shellLanguages are the fence tags treated as shell. An untagged block
// counts as shell too.
var shellLanguages = map[string]bool{
	"":              true,
	"bash":          true,
	"sh":            true,
	"shell":         true,
	"zsh":           true,
	"fish":          true,
	"console":       true,
	"terminal":      true,
	"shell-session": true,
	"shellsession":  true,
	"powershell":    true,
	"pwsh":          true,
	"ps1":           true,
	"cmd":           true,
	"bat":           true,
}

// testKeywords signal that the README explains how to run tests.
var testKeywords = []string{
	"test", "tests", "testing", "pytest", "unittest", "go test", "npm test",
	"yarn test", "cargo test", "make test", "jest", "vitest", "mocha", "rspec",
	"phpunit", "tox", "coverage",
}

// testBadgeMarkers are matched against badge alt text and URLs.
var testBadgeMarkers = []string{"test", "tests", "coverage", "codecov", "coveralls", "build", "ci", "circleci", "actions/workflows"}

// licenseKeywords signal a license reference in the README.
var licenseKeywords = []string{"license", "licence", "licensed", "spdx"}

// Risk messages, in checklist order.
const (
	RiskReadmeMissing     = "README missing or empty"
	RiskNoTests           = "no visible test instructions"
	RiskLicenseUnclear    = "license unclear"
	RiskNoRunInstructions = "no runnable instructions found"
	RiskPurposeUnclear    = "purpose unclear"
)

// UnknownPurpose is the purpose reported when none can be inferred.
const UnknownPurpose = "unknown"

// riskChecks is the gap checklist. Each entry fires when its signal is absent.
var riskChecks = []struct {
	risk    string
	missing func(s *signals) bool
}{
	{risk: RiskNoTests, missing: func(s *signals) bool { return !s.tests }},
	{risk: RiskLicenseUnclear, missing: func(s *signals) bool { return !s.license }},
	{risk: RiskNoRunInstructions, missing: func(s *signals) bool { return !s.run }},
	{risk: RiskPurposeUnclear, missing: func(s *signals) bool { return !s.purpose }},
}
