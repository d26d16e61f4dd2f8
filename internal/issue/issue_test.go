// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		TaskfileNotFoundId,
		TaskfileParseErrorId,
		TaskNotFoundId,
		ScriptParseErrorId,
		ConfigLoadFailedId,
		PackageInstallFailedId,
		PackageNotFoundId,
		NodeModulesOutdatedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if TaskfileNotFoundId != 1 {
		t.Errorf("TaskfileNotFoundId = %d, want 1", TaskfileNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(TaskNotFoundId)
	if issue == nil {
		t.Fatal("Get(TaskNotFoundId) returned nil")
	}

	if issue.Id() != TaskNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), TaskNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(TaskfileNotFoundId)
	if issue == nil {
		t.Fatal("Get(TaskfileNotFoundId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if !strings.Contains(string(msg), "No task file found") {
		t.Errorf("MarkdownMsg() = %q, want it to contain 'No task file found'", msg)
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(ScriptParseErrorId)
	if issue == nil {
		t.Fatal("Get(ScriptParseErrorId) returned nil")
	}

	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() returned no links")
	}
	original := links[0]
	links[0] = "modified"

	if got := issue.ExtLinks()[0]; got != original {
		t.Errorf("ExtLinks()[0] = %q after mutating the copy, want %q", got, original)
	}

	if docs := issue.DocLinks(); len(docs) != 0 {
		t.Errorf("DocLinks() = %v, want empty", docs)
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	rendered, err := Get(TaskNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if gotStyle != "dark" {
		t.Errorf("style path = %q, want dark", gotStyle)
	}
	if !strings.Contains(rendered, "Task not found") {
		t.Errorf("Render() output missing heading: %q", rendered)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() should not add a links section for an issue without links")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(ScriptParseErrorId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "## See also") {
		t.Error("Render() should include the links section")
	}
	if !strings.Contains(rendered, "- <https://pubs.opengroup.org/") {
		t.Errorf("Render() should list the external link, got %q", rendered)
	}
}

func TestGet_Unknown(t *testing.T) {
	if got := Get(Id(9999)); got != nil {
		t.Errorf("Get(9999) = %v, want nil", got)
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered by id at %d", i)
		}
	}

	values[0] = nil
	if Values()[0] == nil {
		t.Error("Values() should return a copy of the catalog")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
