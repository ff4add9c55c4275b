package template

// DefaultSummary is the embedded completion summary template.
// It uses {{variable}} placeholders for dynamic content injection.
const DefaultSummary = `# {{title}}
Run: {{run}} | Progress: {{progress}}%

{{answers}}
Thanks for completing {{form}}.
`
