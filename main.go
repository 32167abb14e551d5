package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/lexer"
	"github.com/pontaoski/cfront/parser"
	"github.com/pontaoski/cfront/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// readSource reads the file named by the first argument, or stdin when
// there is none or it is "-".
func readSource(c *cli.Context) (*types.Source, error) {
	name := c.Args().First()
	if name == "" || name == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return types.NewSource("<stdin>", string(data)), nil
	}
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return types.NewSource(name, string(data)), nil
}

// printError writes a lex or parse failure to stderr. It reports false
// when err is not a diagnostic and nothing was printed.
func printError(c *cli.Context, src *types.Source, err error) bool {
	switch d, ok := errors.AsDiagnostic(err); {
	case c.Bool("trace"):
		if c.Bool("no-color") {
			tracerr.PrintSource(err)
		} else {
			tracerr.PrintSourceColor(err)
		}
	case ok:
		fmt.Fprint(os.Stderr, errors.Render(src, d))
	default:
		return false
	}
	return true
}

// report prints err and returns the error for the command to exit with.
func report(c *cli.Context, src *types.Source, err error) error {
	if !printError(c, src, err) {
		return err
	}
	return fmt.Errorf("%s: compilation failed", src.Filename)
}

// fixture is the shape of one case in lexer/testdata/tokens.yaml.
type fixture struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
	Want string `yaml:"want"`
}

func tokensAction(c *cli.Context) error {
	src, err := readSource(c)
	if err != nil {
		return err
	}
	toks, err := lexer.Tokenize(src.Text)
	if err != nil {
		return report(c, src, err)
	}

	var lines []string
	for _, tok := range toks[:len(toks)-1] {
		lines = append(lines, fmt.Sprintf("%s %s", tok.Kind, tok.Text))
	}

	if !c.Bool("yaml") {
		for i, line := range lines {
			if c.Bool("positions") {
				fmt.Printf("%s\t%s\n", src.Position(toks[i].Location.Start), line)
			} else {
				fmt.Println(line)
			}
		}
		return nil
	}

	out, err := yaml.Marshal([]fixture{{
		Name: c.String("name"),
		Src:  src.Text,
		Want: strings.Join(lines, "\n") + "\n",
	}})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func checkAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no files given")
	}
	failed := 0
	for _, name := range c.Args().Slice() {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			return err
		}
		src := types.NewSource(name, string(data))
		if _, err := parser.Parse(src.Text); err != nil {
			if !printError(c, src, err) {
				log.Print(err)
			}
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, c.NArg())
	}
	return nil
}

func parseSource(c *cli.Context) (*ast.Program, error) {
	src, err := readSource(c)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(src.Text)
	if err != nil {
		return nil, report(c, src, err)
	}
	return prog, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cfront: ")

	app := &cli.App{
		Name:  "cfront",
		Usage: "C front end: lex and parse preprocessed C",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "print errors with a stack trace of the parser",
				EnvVars: []string{"CFRONT_TRACE"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored trace output",
			},
		},
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatal(err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "print the token stream of a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "positions",
						Usage: "prefix each token with file:line:col",
					},
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "print a lexer test fixture instead",
					},
					&cli.StringFlag{
						Name:  "name",
						Value: "unnamed",
						Usage: "fixture name used with --yaml",
					},
				},
				Action: tokensAction,
			},
			{
				Name:      "tree",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					prog, err := parseSource(c)
					if err != nil {
						return err
					}
					fmt.Println(ast.Print(prog))
					return nil
				},
			},
			{
				Name:      "dump",
				Usage:     "dump the syntax tree as Go values",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					prog, err := parseSource(c)
					if err != nil {
						return err
					}
					repr.Println(prog, repr.Indent("  "))
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "parse files and report the first error in each",
				ArgsUsage: "file...",
				Action:    checkAction,
			},
		},
	}
	app.Run(os.Args)
}
