// Package pg2mysql translates a PostgreSQL plain-text dump into a dump file
// a MySQL-family server accepts.
package pg2mysql

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/oz/pg2mysql/database"
	"github.com/oz/pg2mysql/dump"
	"github.com/oz/pg2mysql/translate"
	"golang.org/x/term"
)

type Options struct {
	InputFile    string
	OutputFile   string
	SkipTables   []string
	InsertIgnore bool
	Strict       bool
	Apply        bool
	Config       database.GeneratorConfig
}

// WarningLogger is the diagnostic sink: one human-readable line per skipped
// or unrecognized input line, kept off the primary output stream.
type WarningLogger struct {
	out io.Writer
	c   *color.Color
}

func NewWarningLogger(out io.Writer) *WarningLogger {
	return &WarningLogger{out: out, c: color.New(color.FgYellow)}
}

func (l *WarningLogger) Printf(format string, v ...any) {
	l.c.Fprintf(l.out, "-- WARNING: "+format+"\n", v...)
}

// Database creation pairs are emitted mid-statement but stand alone; the
// apply path must not glue them onto the CREATE TABLE that triggered them.
var standaloneRe = regexp.MustCompile(`^(?:DROP|CREATE) DATABASE `)

// Main function shared by all commands. db is only consulted when
// options.Apply is set.
func Run(db database.Database, options *Options) translate.Stats {
	in, err := openInput(options.InputFile)
	if err != nil {
		log.Fatalf("Failed to open '%s': %s", options.InputFile, err)
	}
	defer in.Close()

	out, err := openOutput(options.OutputFile)
	if err != nil {
		log.Fatalf("Failed to create '%s': %s", options.OutputFile, err)
	}
	defer out.Close()

	skipTables := append([]string{}, options.SkipTables...)
	skipTables = append(skipTables, options.Config.SkipTables...)

	translator := translate.New(translate.Options{
		SkipTables:   skipTables,
		InsertIgnore: options.InsertIgnore,
		Strict:       options.Strict,
		Warnings:     NewWarningLogger(os.Stderr),
	})

	writer := bufio.NewWriter(out)
	var statements []string // completed statements, only collected for apply
	var pending []string
	collect := func(lines []string) {
		for _, line := range lines {
			fmt.Fprintln(writer, line)
			if !options.Apply {
				continue
			}
			if standaloneRe.MatchString(line) {
				statements = append(statements, line)
				continue
			}
			pending = append(pending, line)
			if !translator.Open() && strings.HasSuffix(strings.TrimRight(line, " "), ";") {
				statements = append(statements, strings.Join(pending, "\n"))
				pending = nil
			}
		}
	}

	collect(translator.Preamble())

	reader := dump.NewReader(in)
	for reader.Scan() {
		lines, err := translator.Translate(reader.Line(), reader.Peek())
		if err != nil {
			log.Fatal(err)
		}
		collect(lines)
	}
	if err := reader.Err(); err != nil {
		log.Fatalf("Failed to read '%s': %s", options.InputFile, err)
	}

	collect(translator.Finish())
	if err := writer.Flush(); err != nil {
		log.Fatalf("Failed to write '%s': %s", options.OutputFile, err)
	}

	if options.Apply {
		if err := database.RunStatements(db, statements); err != nil {
			log.Fatal(err)
		}
	}
	return translator.Stats
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("stdin is not piped")
		}
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
