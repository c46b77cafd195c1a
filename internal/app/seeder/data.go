package seeder

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Thread is one question with its answers, oldest answer first.
type Thread struct {
	Question string   `yaml:"question"`
	Answers  []string `yaml:"answers"`
}

type dataFile struct {
	Threads []Thread `yaml:"threads"`
}

// DefaultThreads is the built-in demo board.
var DefaultThreads = []Thread{
	{
		Question: "What is the difference between a goroutine and an OS thread?",
		Answers: []string{
			"Goroutines are scheduled by the Go runtime onto a small pool of OS threads.",
			"They start with a tiny stack that grows on demand, so you can run hundreds of thousands of them.",
		},
	},
	{
		Question: "How do you keep a Postgres LISTEN connection alive behind a load balancer?",
		Answers: []string{
			"Enable TCP keepalives and reconnect with a delay when the connection drops.",
		},
	},
	{
		Question: "Is it fine to store timestamps without a time zone?",
		Answers: []string{
			"Use timestamptz and convert to local time only when rendering.",
			"timestamptz stores UTC internally, so comparisons stay correct across zones.",
			"Plain timestamp is only safe if every writer agrees on the zone.",
		},
	},
	{
		Question: "Any tips for writing readable table-driven tests?",
		Answers:  nil,
	},
	{
		Question: "Why does my terminal UI flicker when I redraw on every keystroke?",
		Answers: []string{
			"Render into a buffer and write the whole frame at once; bubbletea already does this for you.",
		},
	},
}

// LoadThreads reads threads from a YAML file of the form:
//
//	threads:
//	  - question: "..."
//	    answers: ["...", "..."]
func LoadThreads(path string) ([]Thread, error) {
	var f dataFile
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("seeder data: read %s: %w", path, err)
	}
	if err := validateThreads(f.Threads); err != nil {
		return nil, fmt.Errorf("seeder data: %s: %w", path, err)
	}
	return f.Threads, nil
}

func validateThreads(threads []Thread) error {
	if len(threads) == 0 {
		return fmt.Errorf("no threads")
	}
	for i, t := range threads {
		if strings.TrimSpace(t.Question) == "" {
			return fmt.Errorf("thread %d: empty question", i)
		}
		for j, a := range t.Answers {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("thread %d answer %d: empty answer", i, j)
			}
		}
	}
	return nil
}
