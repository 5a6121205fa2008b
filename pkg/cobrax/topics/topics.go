// Package topics provides a pluggable, topic-based help system for
// cobra applications. Topics are loaded from a file system, usually an
// embedded one, and served through the regular help machinery: `help
// <topic>` renders the topic, `help topics` lists what is available,
// and anything that is not a topic falls through to cobra's own help.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// OptionPrefix marks topics that document a flag rather than a
// concept: `help --without` resolves to the file option-without.
const OptionPrefix = "option-"

// Topic is a single help text loaded from the topics file system.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures the topic system.
type Options struct {
	// Extensions lists the file extensions considered topics.
	// Defaults to .txt and .md.
	Extensions []string

	// Renderer formats topic content for display. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Manager holds the scanned topics and the hook back into cobra's
// original help function.
type Manager struct {
	topics       map[string]*Topic
	extensions   []string
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// New scans fsys and returns a manager holding every topic found.
// Subdirectories are walked; the topic name is the file name without
// its extension.
func New(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.scan(fsys); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) scan(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get resolves a topic by name. Flag spellings resolve to their option
// topic, so "without", "--without" and "-without" all find
// option-without.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[OptionPrefix+name]
	return topic, ok
}

// Names returns every topic name, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) render(topic *Topic) string {
	return m.renderer.Render(topic.Content, path.Ext(topic.Path))
}

// renderList formats the `help topics` listing, option topics shown
// in their flag spelling.
func (m *Manager) renderList(appName string) string {
	names := m.Names()
	if len(names) == 0 {
		return "No help topics available."
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, OptionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(name, OptionPrefix))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Help topics") + "\n")
	for _, name := range general {
		b.WriteString(itemStyle.Render(name) + "\n")
	}
	if len(options) > 0 {
		b.WriteString("\n" + titleStyle.Render("Option topics") + "\n")
		for _, name := range options {
			b.WriteString(itemStyle.Render(name) + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("Use \"%s help <topic>\" to read one.", appName)))
	return b.String()
}

// Initialize replaces rootCmd's help command with one that also serves
// the topics found in fsys. Command help is untouched; topic names
// simply become valid help arguments.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) error {
	m, err := New(fsys, opts)
	if err != nil {
		return fmt.Errorf("failed to scan help topics: %w", err)
	}
	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help shows the help for any command or topic.
Type "%[1]s help <command or topic>" for full details, or "%[1]s help topics"
for the list of available topics.`, rootCmd.Name()),
		// Flags stay unparsed so option topics resolve: `help --without`
		// must reach Run as an argument, not fail as an unknown flag.
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				m.originalHelp(rootCmd, nil)
			case args[0] == "topics":
				fmt.Println(m.renderList(rootCmd.Name()))
			default:
				if topic, ok := m.Get(args[0]); ok {
					fmt.Print(m.render(topic))
					return
				}
				if target, _, err := rootCmd.Find(args); err == nil && target != nil {
					_ = target.Help()
					return
				}
				m.originalHelp(rootCmd, args)
			}
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	// The --help flag goes through the help function, so topics work
	// there too.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Get(args[0]); ok {
				fmt.Print(m.render(topic))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}
