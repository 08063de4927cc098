package cli

import (
	"errors"
	"testing"

	"github.com/GoCodeAlone/taskbook/skill"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"add Buy milk", Command{Kind: KindAdd, Args: map[string]string{
			skill.ArgTitle: "Buy milk",
		}}},
		{"add Buy milk -d 2 liters, whole", Command{Kind: KindAdd, Args: map[string]string{
			skill.ArgTitle:       "Buy milk",
			skill.ArgDescription: "2 liters, whole",
		}}},
		{"list", Command{Kind: KindList, Args: map[string]string{}}},
		{"list json", Command{Kind: KindList, Args: map[string]string{}, JSON: true}},
		{"show 3", Command{Kind: KindShow, Args: map[string]string{skill.ArgID: "3"}}},
		{"update 2 -t New title", Command{Kind: KindUpdate, Args: map[string]string{
			skill.ArgID:    "2",
			skill.ArgTitle: "New title",
		}}},
		{"update 2 -t New title -d new description", Command{Kind: KindUpdate, Args: map[string]string{
			skill.ArgID:          "2",
			skill.ArgTitle:       "New title",
			skill.ArgDescription: "new description",
		}}},
		{"delete 7", Command{Kind: KindDelete, Args: map[string]string{skill.ArgID: "7"}}},
		{"complete 1", Command{Kind: KindComplete, Args: map[string]string{
			skill.ArgID:     "1",
			skill.ArgStatus: "complete",
		}}},
		{"incomplete 1", Command{Kind: KindIncomplete, Args: map[string]string{
			skill.ArgID:     "1",
			skill.ArgStatus: "incomplete",
		}}},
		{"agents", Command{Kind: KindAgents}},
		{"history", Command{Kind: KindHistory}},
		{"help", Command{Kind: KindHelp}},
		{"exit", Command{Kind: KindExit}},
		{"quit", Command{Kind: KindExit}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.line, err)
			continue
		}
		if got.Kind != tt.want.Kind || got.JSON != tt.want.JSON {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			continue
		}
		if len(got.Args) != len(tt.want.Args) {
			t.Errorf("Parse(%q) args = %v, want %v", tt.line, got.Args, tt.want.Args)
			continue
		}
		for k, v := range tt.want.Args {
			if got.Args[k] != v {
				t.Errorf("Parse(%q) args[%s] = %q, want %q", tt.line, k, got.Args[k], v)
			}
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, line := range []string{
		"add",
		"add -d description only",
		"list yaml",
		"show",
		"show 1 2",
		"update",
		"update 2",
		"update 2 -t",
		"delete",
		"complete",
		"frobnicate 3",
	} {
		if _, err := Parse(line); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", line)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		if _, err := Parse(line); !errors.Is(err, ErrEmpty) {
			t.Errorf("Parse(%q) err = %v, want ErrEmpty", line, err)
		}
	}
}
