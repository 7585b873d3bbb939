package tutorial

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// langName returns the capitalized language name, or "" for English output.
// Prompts only carry translation instructions when it is non-empty.
func langName(language string) string {
	if language == "" || strings.EqualFold(language, "english") {
		return ""
	}
	runes := []rune(strings.ToLower(language))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

var abstractionsTmpl = template.Must(template.New("abstractions").Parse(
	`For the project ` + "`{{.ProjectName}}`" + `:

Codebase Context:
{{.Context}}

{{if .Lang}}IMPORTANT: Generate the ` + "`name`" + ` and ` + "`description`" + ` for each abstraction in **{{.Lang}}** language. Do NOT use English for these fields.

{{end}}Analyze the codebase context.
Identify the top 5-{{.MaxAbstractions}} core most important abstractions to help those new to the codebase.

For each abstraction, provide:
1. A concise ` + "`name`" + `{{if .Lang}} (value in {{.Lang}}){{end}}.
2. A beginner-friendly ` + "`description`" + ` explaining what it is with a simple analogy, in around 100 words{{if .Lang}} (value in {{.Lang}}){{end}}.
3. A list of relevant ` + "`file_indices`" + ` (integers) using the format ` + "`idx # path/comment`" + `.

List of file indices and paths present in the context:
{{.FileListing}}

Format the output as a YAML list of dictionaries:

` + "```yaml" + `
- name: |
    Query Processing
  description: |
    Explains what the abstraction does.
    It's like a central dispatcher routing requests.
  file_indices:
    - 0 # path/to/file1.go
    - 3 # path/to/related.go
- name: |
    Query Optimization
  description: |
    Another core concept, similar to a blueprint for objects.
  file_indices:
    - 5 # path/to/another.js
# ... up to {{.MaxAbstractions}} abstractions
` + "```"))

var relationshipsTmpl = template.Must(template.New("relationships").Parse(
	`Based on the following abstractions and relevant code snippets from the project ` + "`{{.ProjectName}}`" + `:

List of Abstraction Indices and Names{{if .Lang}} (Names might be in {{.Lang}}){{end}}:
{{.AbstractionListing}}

Context (Abstractions, Descriptions, Code):
{{.Context}}

{{if .Lang}}IMPORTANT: Generate the ` + "`summary`" + ` and relationship ` + "`label`" + ` fields in **{{.Lang}}** language. Do NOT use English for these fields.

{{end}}Please provide:
1. A high-level ` + "`summary`" + ` of the project's main purpose and functionality in a few beginner-friendly sentences. Use markdown formatting with **bold** and *italic* text to highlight important concepts.
2. A list (` + "`relationships`" + `) describing the key interactions between these abstractions. For each relationship, specify:
    - ` + "`from_abstraction`" + `: Index of the source abstraction (e.g., ` + "`0 # AbstractionName1`" + `)
    - ` + "`to_abstraction`" + `: Index of the target abstraction (e.g., ` + "`1 # AbstractionName2`" + `)
    - ` + "`label`" + `: A brief label for the interaction **in just a few words** (e.g., "Manages", "Inherits", "Uses").
    Ideally the relationship should be backed by one abstraction calling or passing parameters to another.
    Simplify the relationship and exclude those non-important ones.

IMPORTANT: Make sure EVERY abstraction is involved in at least ONE relationship (either as source or target). Each abstraction index must appear at least once across all relationships.

Format the output as YAML:

` + "```yaml" + `
summary: |
  A brief, simple explanation of the project.
  Can span multiple lines with **bold** and *italic* for emphasis.
relationships:
  - from_abstraction: 0 # AbstractionName1
    to_abstraction: 1 # AbstractionName2
    label: "Manages"
  - from_abstraction: 2 # AbstractionName3
    to_abstraction: 0 # AbstractionName1
    label: "Provides config"
  # ... other relationships
` + "```" + `

Now, provide the YAML output:
`))

var orderTmpl = template.Must(template.New("order").Parse(
	`Given the following project abstractions and their relationships for the project ` + "`{{.ProjectName}}`" + `:

Abstractions (Index # Name){{if .Lang}} (Names might be in {{.Lang}}){{end}}:
{{.AbstractionListing}}

Context about relationships and project summary:
{{.Context}}

If you are going to make a tutorial for ` + "`{{.ProjectName}}`" + `, what is the best order to explain these abstractions, from first to last?
Ideally, first explain those that are the most important or foundational, perhaps user-facing concepts or entry points. Then move to more detailed, lower-level implementation details or supporting concepts.

Output the ordered list of abstraction indices, including the name in a comment for clarity. Use the format ` + "`idx # AbstractionName`" + `.

` + "```yaml" + `
- 2 # FoundationalConcept
- 0 # CoreClassA
- 1 # CoreClassB (uses CoreClassA)
- ...
` + "```" + `

Now, provide the YAML output:
`))

var httpCallsTmpl = template.Must(template.New("httpcalls").Parse(
	`{{if .Lang}}IMPORTANT: The response should be YAML. If you add any descriptive text outside the YAML, it should be in **{{.Lang}}** language.

{{end}}For the project ` + "`{{.ProjectName}}`" + `, and the file ` + "`{{.FilePath}}`" + `:

File Content:
` + "```{{.FenceLang}}" + `
{{.Content}}
` + "```" + `

Analyze the frontend code (JavaScript/TypeScript) above.
Identify all API calls (e.g., using ` + "`fetch`, `axios`, `XMLHttpRequest`" + `, or other HTTP client libraries).

For each API call found, provide the following details:
1. ` + "`calling_function_name`" + `: The name of the function in which the API call is made. If it's not in a function, use "global scope" or a relevant class/method name.
2. ` + "`api_endpoint`" + `: The URL or endpoint of the API being called. If it's a variable, provide the variable name.
3. ` + "`http_method`" + `: The HTTP method used (e.g., GET, POST, PUT, DELETE).
4. ` + "`request_parameters`" + `: A list of key-value pairs or a description of parameters sent with the request.
5. ` + "`response_usage`" + `: A description of how the API response data is used in the code.

Format the output as a YAML list of dictionaries, with one dictionary per API call found in this file.
If no API calls are found in this file, output an empty YAML list ` + "`[]`" + `.

Example for a single API call:
` + "```yaml" + `
- calling_function_name: "fetchUserDetails"
  api_endpoint: "/api/users/{userId}"
  http_method: "GET"
  request_parameters:
    - name: "userId"
      source: "path_variable"
      description: "User's unique identifier"
  response_usage: "The user's name and email are displayed in the profile section."
` + "```" + `

Now, provide the YAML output for the file ` + "`{{.FilePath}}`" + `:
`))

var endpointsTmpl = template.Must(template.New("endpoints").Parse(
	`{{if .Lang}}IMPORTANT: The response MUST be YAML. If you include any descriptive text for fields like 'description', it should be in **{{.Lang}}** language.

{{end}}For the project ` + "`{{.ProjectName}}`" + `, and the Python file ` + "`{{.FilePath}}`" + `:

File Content:
` + "```python" + `
{{.Content}}
` + "```" + `

Analyze the Python code above to identify HTTP endpoints (e.g., defined with ` + "`@app.get`, `@router.post`" + `, etc.).
For each endpoint, extract the following information:

1. ` + "`http_method`" + `: The HTTP method (e.g., GET, POST, PUT, DELETE).
2. ` + "`route_path`" + `: The URL path for the endpoint (e.g., "/items/{item_id}").
3. ` + "`summary`" + `: A brief summary or description of the endpoint, often found in the function's docstring.
4. ` + "`path_parameters`" + `: A list of path parameters, each with ` + "`name`" + ` and ` + "`type`" + `.
5. ` + "`query_parameters`" + `: A list of query parameters, each with ` + "`name`, `type`" + `, optional ` + "`default`" + `, and optional ` + "`required`" + ` boolean.
6. ` + "`request_body_model`" + `: Information about the request body, if any: ` + "`model_name`" + `, its ` + "`fields`" + ` (name, type, required), and an optional ` + "`example`" + `.
7. ` + "`response_model`" + `: Information about the response: ` + "`model_name`" + `, its ` + "`fields`" + `, an optional ` + "`example`" + `, and an optional ` + "`status_code`" + `.

Format the output as a YAML list of dictionaries, with one dictionary per endpoint found in this file.
If no endpoints are found in this file, output an empty YAML list ` + "`[]`" + `.

Now, provide the YAML output for the file ` + "`{{.FilePath}}`" + `:
`))

var apiReferenceTmpl = template.Must(template.New("apireference").Parse(
	`{{if .Lang}}IMPORTANT: Generate the ENTIRE API documentation in **{{.Lang}}**. All surrounding text, explanations, and section titles MUST be in {{.Lang}}. DO NOT use English except for technical keywords like HTTP methods or model names.

{{end}}Project Name: {{.ProjectName}}

Endpoint Data (extracted from source code):
` + "```yaml" + `
{{.EndpointData}}
` + "```" + `

Based on the structured endpoint data provided above, generate a comprehensive API documentation in Markdown format, specifically for frontend developers.

The documentation should include:
1. A main title for the API documentation (e.g., "API Reference for {{.ProjectName}}").
2. An introductory section briefly explaining what the API does or how to use the documentation.
3. For each endpoint, create a section with:
    * A clear title including the HTTP method and route path (e.g., ` + "`POST /items/`" + `).
    * The summary/description of the endpoint.
    * Path Parameters: if any, in a table with columns for Name, Type, and Description.
    * Query Parameters: if any, in a table with columns for Name, Type, Required, Default, and Description.
    * Request Body: if applicable, with the model name, its fields, and a JSON example.
    * Response Model: with the model name, its fields, the success status code, and a JSON example.

Use clear Markdown formatting, including headings, tables, and code blocks for JSON examples.
Output *only* the Markdown content for this API documentation.
Do NOT include ` + "```markdown```" + ` tags around the output.

Begin the documentation now:
`))

var chapterTmpl = template.Must(template.New("chapter").Parse(
	`{{if .Lang}}IMPORTANT: Write this ENTIRE tutorial chapter in **{{.Lang}}**. Some input context might already be in {{.Lang}}, but you MUST translate ALL other generated content including explanations, examples and technical terms into {{.Lang}}. DO NOT use English anywhere except in code syntax or required proper nouns.

{{end}}Write a very beginner-friendly tutorial chapter (in Markdown format) for the project {{.ProjectName}} about the concept: "{{.AbstractionName}}". This is Chapter {{.ChapterNum}}.

Concept Details:
- Name: {{.AbstractionName}}
- Description:
{{.AbstractionDescription}}

Complete Tutorial Structure:
{{.FullChapterListing}}

{{if .PrevChapter}}Previous chapter: {{.PrevChapter}}
{{end}}{{if .NextChapter}}Next chapter: {{.NextChapter}}
{{end}}Context from previous chapters:
{{.PreviousChapters}}

Relevant Code Snippets (Code itself remains unchanged):
{{.FileContext}}

{{if .APICallSection}}{{.APICallSection}}
{{end}}Instructions for the chapter:
- Start with a clear heading (e.g., ` + "`# Chapter {{.ChapterNum}}: {{.AbstractionName}}`" + `). Use the provided concept name.

- If this is not the first chapter, begin with a brief transition from the previous chapter, referencing it with a proper Markdown link using its name.

- Begin with a high-level motivation explaining what problem this abstraction solves. Start with a central use case as a concrete example. The whole chapter should guide the reader to understand how to solve this use case. Make it very minimal and friendly to beginners.

- If the abstraction is complex, break it down into key concepts. Explain each concept one-by-one in a very beginner-friendly way.

- Explain how to use this abstraction to solve the use case. Give example inputs and outputs for code snippets (if the output isn't values, describe at a high level what will happen).

- Each code block should be BELOW 10 lines! If longer code blocks are needed, break them down into smaller pieces and walk through them one-by-one. Aggressively simplify the code to make it minimal. Use comments to skip non-important implementation details. Each code block should have a beginner friendly explanation right after it.

- Describe the internal implementation to help understand what's under the hood. First provide a non-code or code-light walkthrough on what happens step-by-step when the abstraction is called. It's recommended to use a simple sequenceDiagram with a dummy example - keep it minimal with at most 5 participants to ensure clarity. If participant name has space, use: ` + "`participant QP as Query Processing`" + `.

- Then dive deeper into code for the internal implementation with references to files. Provide example code blocks, but make them similarly simple and beginner-friendly. Explain.

{{if .APICallSection}}- **If API call information is provided above, integrate it naturally into the explanations.** When discussing code that makes an API call, describe the endpoint, parameters, and how the response is used, based on the provided details.

{{end}}- IMPORTANT: When you need to refer to other core abstractions covered in other chapters, ALWAYS use proper Markdown links like this: [Chapter Title](filename.md). Use the Complete Tutorial Structure above to find the correct filename and the chapter title.

- Use mermaid diagrams to illustrate complex concepts (` + "```mermaid```" + ` format).

- Heavily use analogies and examples throughout to help beginners understand.

- End the chapter with a brief conclusion that summarizes what was learned and provides a transition to the next chapter. If there is a next chapter, use a proper Markdown link: [Next Chapter Title](next_chapter_filename).

- Ensure the tone is welcoming and easy for a newcomer to understand.

- Output *only* the Markdown content for this chapter.

Now, directly provide a super beginner-friendly Markdown output (DON'T need ` + "```markdown```" + ` tags):
`))
