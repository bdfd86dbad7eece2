// Command sqlerd is a thin diagnostic entry point over the core packages:
// loading the catalog and checking a data source's connection. It wires a
// launcher around library packages rather than owning business logic
// itself. The desktop UI this core ships behind is a separate collaborator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sqlercore/sqler/catalog"
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"

	// Each backend driver self-registers via init(); importing for side
	// effect is the same idiom database/sql driver packages use.
	_ "github.com/sqlercore/sqler/driver/mongodriver"
	_ "github.com/sqlercore/sqler/driver/mysqldriver"
	_ "github.com/sqlercore/sqler/driver/oracledriver"
	_ "github.com/sqlercore/sqler/driver/postgresdriver"
	_ "github.com/sqlercore/sqler/driver/redisdriver"
	_ "github.com/sqlercore/sqler/driver/sqlitedriver"
	_ "github.com/sqlercore/sqler/driver/sqlserverdriver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := common.NewProductionLogger()
	defer logger.Sync()

	switch os.Args[1] {
	case "list-sources":
		runListSources(logger)
	case "check-connection":
		runCheckConnection(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sqlerd <list-sources|check-connection> [flags]")
}

func openCatalog(logger common.Logger) *catalog.Catalog {
	root := common.GetenvOrDefault("SQLER_HOME", "")
	if root == "" {
		defaultRoot, err := catalog.DefaultRoot()
		if err != nil {
			logger.Fatalf("sqlerd: resolving catalog home failed: %v", err)
		}

		root = defaultRoot
	}

	c, err := catalog.Load(root, logger)
	if err != nil {
		logger.Fatalf("sqlerd: loading catalog failed: %v", err)
	}

	return c
}

func runListSources(logger common.Logger) {
	c := openCatalog(logger)

	for _, source := range c.Sources() {
		fmt.Printf("%s\t%s\t%s\n", source.ID, source.Kind, source.Name)
	}
}

func runCheckConnection(logger common.Logger, args []string) {
	fs := flag.NewFlagSet("check-connection", flag.ExitOnError)
	name := fs.String("name", "", "data source name to check")
	fs.Parse(args)

	if *name == "" {
		logger.Fatal("sqlerd: check-connection requires -name")
	}

	c := openCatalog(logger)

	for _, source := range c.Sources() {
		if source.Name != *name {
			continue
		}

		if err := driver.CheckConnection(source.Options, logger); err != nil {
			logger.Fatalf("sqlerd: connection check failed: %v", err)
		}

		fmt.Println("ok")

		return
	}

	logger.Fatalf("sqlerd: no data source named %q", *name)
}
