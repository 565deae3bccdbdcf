package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
	"github.com/vxnquish/Compiler-SLR1/lr/slr"
	"github.com/vxnquish/Compiler-SLR1/minic"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

var (
	flagRender      = pflag.StringP("render", "r", "", "Render mode for accepted input [sexpr|indent|tree].")
	flagTokens      = pflag.BoolP("tokens", "t", false, "Input is a pre-tokenized token-word stream.")
	flagConfig      = pflag.StringP("config", "c", "", "TOML config file.")
	flagTrace       = pflag.String("trace", "", "Trace level [Debug|Info|Error].")
	flagTables      = pflag.String("tables", "", "Write the ACTION and GOTO tables as HTML to a file.")
	flagDot         = pflag.String("dot", "", "Write the CFSM in GraphViz DOT format to a file.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Start an interactive session.")
)

// Config collects the settings a TOML config file may provide. Command line
// flags take precedence over config file entries.
type Config struct {
	Render string `toml:"render"` // render mode: sexpr | indent | tree
	Indent int    `toml:"indent"` // indentation width for render mode indent
	Trace  string `toml:"trace"`  // trace level name
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	pflag.Parse()
	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	setTraceLevel(tracing.TraceLevelFromString(cfg.Trace))
	tracer().Infof("Trace level is %s", cfg.Trace)
	if *flagTables != "" {
		if err := writeTables(*flagTables); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		pterm.Info.Println("Tables written to " + *flagTables)
	}
	if *flagDot != "" {
		if err := writeDot(*flagDot); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		pterm.Info.Println("CFSM written to " + *flagDot)
	}
	if *flagInteractive {
		intp, err := newIntp(cfg)
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(3)
		}
		intp.REPL()
		return
	}
	if len(pflag.Args()) == 0 && (*flagTables != "" || *flagDot != "") {
		return // table output only, nothing to parse
	}
	input, err := readInput(pflag.Args())
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	tree, err := parseInput(input, *flagTokens)
	os.Exit(report(tree, err, cfg))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadConfig(path string) (Config, error) {
	cfg := Config{ // defaults
		Render: "sexpr",
		Indent: 2,
		Trace:  "Info",
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if pflag.Lookup("render").Changed {
		cfg.Render = *flagRender
	}
	if pflag.Lookup("trace").Changed {
		cfg.Trace = *flagTrace
	}
	switch cfg.Render {
	case "sexpr", "indent", "tree":
	default:
		return cfg, fmt.Errorf("unknown render mode: %q", cfg.Render)
	}
	if cfg.Indent <= 0 {
		cfg.Indent = 2
	}
	return cfg, nil
}

// setTraceLevel sets a trace level for all the tracers of this module.
func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range []string{"slr1.cli", "slr1.minic", "slr1.lr", "slr1.scanner"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func readInput(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("too many arguments, expected at most one input file")
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		return string(data), err
	}
	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}

func parseInput(input string, tokens bool) (*ptree.Node, error) {
	if tokens {
		return minic.ParseTokens(strings.NewReader(input))
	}
	return minic.Parse(input)
}

// report prints the outcome of a parse run and returns the process exit code.
func report(tree *ptree.Node, err error, cfg Config) int {
	if err != nil {
		var syntaxErr *slr.SyntaxError
		if errors.As(err, &syntaxErr) {
			pterm.Error.Println(fmt.Sprintf("Error at token %d: %v", syntaxErr.Index, err))
		} else {
			pterm.Error.Println(err.Error())
		}
		return 1
	}
	pterm.Info.Println("Accepted.")
	renderTree(tree, cfg)
	return 0
}

func renderTree(tree *ptree.Node, cfg Config) {
	switch cfg.Render {
	case "indent":
		pterm.Println(ptree.IndentRenderer{Width: cfg.Indent}.Render(tree))
	case "tree":
		ll := pterm.LeveledList{}
		tree.Walk(func(n *ptree.Node, depth int) {
			ll = append(ll, pterm.LeveledListItem{Level: depth, Text: n.Label()})
		})
		root := pterm.NewTreeFromLeveledList(ll)
		pterm.DefaultTree.WithRoot(root).Render()
	default: // sexpr
		pterm.Println(ptree.SExprRenderer{}.Render(tree))
	}
}

func writeTables(filename string) error {
	lrgen, err := minic.Tables()
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	lr.ActionTableAsHTML(lrgen, f)
	lr.GotoTableAsHTML(lrgen, f)
	return nil
}

func writeDot(filename string) error {
	lrgen, err := minic.Tables()
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	lrgen.CFSM().CFSM2GraphViz(f)
	return nil
}

// --- Interactive mode ------------------------------------------------------

// Intp is our interpreter object for interactive sessions.
type Intp struct {
	cfg  Config
	repl *readline.Instance
}

func newIntp(cfg Config) (*Intp, error) {
	repl, err := readline.New("slr1> ")
	if err != nil {
		return nil, err
	}
	return &Intp{cfg: cfg, repl: repl}, nil
}

// REPL starts interactive mode. Every line read is parsed as mini-C input
// and the resulting parse tree is rendered. Lines starting with a backslash
// are meta commands.
func (intp *Intp) REPL() {
	pterm.Info.Println("Welcome to SLR(1) parsing") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")             // inform user how to stop the CLI
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, `\`) {
			if quit := intp.execute(line); quit {
				break
			}
			continue
		}
		tree, err := parseInput(line, *flagTokens)
		report(tree, err, intp.cfg)
	}
	println("Good bye!")
}

// execute runs a REPL meta command:
//
//	\render MODE   switch the render mode [sexpr|indent|tree]
//	\tables        print the ACTION and GOTO tables (HTML)
//	\dot           print the CFSM in GraphViz DOT format
//	\quit          exit
func (intp *Intp) execute(line string) bool {
	args := strings.Fields(line)
	switch args[0] {
	case `\quit`:
		return true
	case `\render`:
		if len(args) < 2 {
			pterm.Error.Println(`usage: \render [sexpr|indent|tree]`)
			return false
		}
		switch args[1] {
		case "sexpr", "indent", "tree":
			intp.cfg.Render = args[1]
		default:
			pterm.Error.Println("unknown render mode: " + args[1])
		}
	case `\tables`:
		lrgen, err := minic.Tables()
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		lr.ActionTableAsHTML(lrgen, os.Stdout)
		lr.GotoTableAsHTML(lrgen, os.Stdout)
	case `\dot`:
		lrgen, err := minic.Tables()
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		lrgen.CFSM().CFSM2GraphViz(os.Stdout)
	default:
		pterm.Error.Println("unknown command: " + args[0])
	}
	return false
}
