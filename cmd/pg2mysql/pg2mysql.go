package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/oz/pg2mysql"
	"github.com/oz/pg2mysql/database"
	"github.com/oz/pg2mysql/database/mysql"
	"github.com/oz/pg2mysql/util"
	"golang.org/x/term"
)

// version and revision are set via -ldflags
var version = "dev"
var revision = "HEAD"

// Return parsed connection config, translation options, and the debug flag
func parseOptions(args []string) (database.Config, *pg2mysql.Options, bool) {
	var opts struct {
		File         string   `long:"file" description:"Read the PostgreSQL dump from the file, rather than stdin" value-name:"dump_file" default:"-"`
		Output       string   `short:"o" long:"output" description:"Write the MySQL dump to the file, rather than stdout" value-name:"sql_file" default:"-"`
		SkipTable    []string `long:"skip-table" description:"Suppress every statement referencing the table (can be specified multiple times)" value-name:"schema.table"`
		Config       string   `long:"config" description:"YAML file to specify: skip_tables"`
		InsertIgnore bool     `long:"insert-ignore" description:"Rewrite INSERT INTO to INSERT IGNORE INTO so duplicate rows don't abort the load"`
		Strict       bool     `long:"strict" description:"Fail on user-defined type declarations instead of warning"`
		Apply        bool     `long:"apply" description:"Execute the translated statements against a MySQL server"`
		User         string   `short:"u" long:"user" description:"MySQL user name for --apply" value-name:"user_name" default:"root"`
		Password     string   `short:"p" long:"password" description:"MySQL user password, overridden by $MYSQL_PWD" value-name:"password"`
		Host         string   `short:"h" long:"host" description:"Host to connect to the MySQL server" value-name:"host_name" default:"127.0.0.1"`
		Port         uint     `short:"P" long:"port" description:"Port used for the connection" value-name:"port_num" default:"3306"`
		Socket       string   `short:"S" long:"socket" description:"The socket file to use for connection" value-name:"socket"`
		Prompt       bool     `long:"password-prompt" description:"Force MySQL user password prompt"`
		Debug        bool     `long:"debug" description:"Print a translation summary to stderr"`
		Help         bool     `long:"help" description:"Show this help"`
		Version      bool     `long:"version" description:"Show this version"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[OPTIONS] < postgres.sql > mysql.sql"
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if opts.Version {
		fmt.Printf("%s (%s)\n", version, revision)
		os.Exit(0)
	}

	if len(args) > 0 {
		fmt.Printf("Unexpected arguments: %v\n\n", args)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	password, ok := os.LookupEnv("MYSQL_PWD")
	if !ok {
		password = opts.Password
	}

	if opts.Prompt {
		fmt.Printf("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			log.Fatal(err)
		}
		password = string(pass)
	}

	options := pg2mysql.Options{
		InputFile:    opts.File,
		OutputFile:   opts.Output,
		SkipTables:   opts.SkipTable,
		InsertIgnore: opts.InsertIgnore,
		Strict:       opts.Strict,
		Apply:        opts.Apply,
		Config:       database.ParseGeneratorConfig(opts.Config),
	}

	dbConfig := database.Config{
		User:     opts.User,
		Password: password,
		Host:     opts.Host,
		Port:     int(opts.Port),
		Socket:   opts.Socket,
	}
	return dbConfig, &options, opts.Debug
}

func main() {
	util.InitSlog()
	config, options, debug := parseOptions(os.Args[1:])

	var db database.Database
	if options.Apply {
		var err error
		db, err = mysql.NewDatabase(config)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	stats := pg2mysql.Run(db, options)
	if debug {
		pp.Fprintln(os.Stderr, stats)
	}
}
