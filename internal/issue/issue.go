// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	TaskfileNotFoundId Id = iota + 1
	TaskfileParseErrorId
	TaskNotFoundId
	ScriptParseErrorId
	ConfigLoadFailedId
	PackageInstallFailedId
	PackageNotFoundId
	NodeModulesOutdatedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	taskfileNotFoundIssue = &Issue{
		id: TaskfileNotFoundId,
		mdMsg: `
# No task file found!

We walked up from the current directory looking for a task file or a
package.json, and found neither.

## Search order in each directory:
1. taskr.cue
2. taskr.yaml
3. taskr.yml
4. package.json

## Things you can try:
- Create a taskr.cue next to your project:
~~~cue
tasks: {
  build: "go build ./..."
  test:  "go test ./..."
}
~~~

- Or point at an existing file:
~~~
$ taskr task --taskfile ./path/to/taskr.cue build
~~~`,
	}

	taskfileParseErrorIssue = &Issue{
		id: TaskfileParseErrorId,
		mdMsg: `
# Failed to parse the task file!

The task file exists but could not be decoded.

## Things you can try:
- Make sure every entry under ` + "`tasks`" + ` maps a name to a script string
- Check the syntax of the file (CUE or YAML, depending on its extension)
- Validate a CUE file on its own:
~~~
$ cue vet taskr.cue
~~~`,
	}

	taskNotFoundIssue = &Issue{
		id: TaskNotFoundId,
		mdMsg: `
# Task not found!

The requested task is not defined in the task file nor in the package.json
scripts of the current project.

## Things you can try:
- List the available tasks:
~~~
$ taskr task
~~~

- Check the spelling of the task name
- Run from a different directory:
~~~
$ taskr task --cwd ./other/project build
~~~`,
	}

	scriptParseErrorIssue = &Issue{
		id: ScriptParseErrorId,
		mdMsg: `
# Failed to parse a task script!

Task scripts are parsed as POSIX shell before they run. The script named in
the error contains a syntax error.

## Things you can try:
- Check for unbalanced quotes, parentheses or braces
- Run the script through a POSIX shell to see where it breaks:
~~~
$ sh -n -c '<script>'
~~~`,
		extLinks: []HttpLink{
			"https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The application configuration file could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Show the configuration that would be used:
~~~
$ taskr config show
~~~

- Print where taskr looks for the configuration file:
~~~
$ taskr config path
~~~`,
	}

	packageInstallFailedIssue = &Issue{
		id: PackageInstallFailedId,
		mdMsg: `
# Failed to install packages!

Some dependencies listed in package.json are not installed, and the install
command failed.

## Things you can try:
- Run the install command yourself and inspect its output:
~~~
$ npm install
~~~

- Use a different install command in your configuration:
~~~cue
npm: install_command: ["pnpm", "install"]
~~~

- Disable automatic installs:
~~~cue
npm: managed: false
~~~`,
	}

	packageNotFoundIssue = &Issue{
		id: PackageNotFoundId,
		mdMsg: `
# Package not found!

The requested npm package is not installed in any node_modules directory
between the current directory and the filesystem root.

## Things you can try:
- Add the package to package.json and install it:
~~~
$ npm install <package>
~~~

- Check that the requested version matches the installed one`,
	}

	nodeModulesOutdatedIssue = &Issue{
		id: NodeModulesOutdatedId,
		mdMsg: `
# Installed packages do not match package.json!

At least one package in node_modules has a version outside of the range
requested by package.json.

## Things you can try:
- Reinstall the dependencies:
~~~
$ npm install
~~~`,
	}

	catalog = []*Issue{
		taskfileNotFoundIssue,
		taskfileParseErrorIssue,
		taskNotFoundIssue,
		scriptParseErrorIssue,
		configLoadFailedIssue,
		packageInstallFailedIssue,
		packageNotFoundIssue,
		nodeModulesOutdatedIssue,
	}

	issues = func() map[Id]*Issue {
		m := make(map[Id]*Issue, len(catalog))
		for _, i := range catalog {
			m[i.Id()] = i
		}
		return m
	}()
)

// Values returns every known issue ordered by id.
func Values() []*Issue {
	return slices.Clone(catalog)
}

func Get(id Id) *Issue {
	return issues[id]
}
