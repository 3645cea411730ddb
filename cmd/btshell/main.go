// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// btshell is a line-oriented REPL exercising a registry end-to-end:
// create/open an index, then insert/get/delete against it.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/oxbow-labs/btindex/bt"
	"github.com/oxbow-labs/btindex/registry"
)

var (
	version   string
	gitCommit string
	gitTag    string

	flags = []cli.Flag{
		cli.StringFlag{
			Name:  "kind",
			Value: "int64",
			Usage: "key kind for the index this shell creates (short32|int64|varbytes)",
		},
		cli.IntFlag{
			Name:  "verbosity",
			Value: int(ethlog.LvlInfo),
			Usage: "log verbosity (0-9)",
		},
	}
)

func parseKind(s string) (bt.Kind, error) {
	switch s {
	case "short32":
		return bt.Short32, nil
	case "int64":
		return bt.Int64, nil
	case "varbytes":
		return bt.VarBytes, nil
	default:
		return 0, errors.Errorf("unknown key kind %q", s)
	}
}

func run(ctx *cli.Context) error {
	logHandler := ethlog.NewGlogHandler(ethlog.StreamHandler(os.Stderr, ethlog.TerminalFormat(true)))
	logHandler.Verbosity(ethlog.Lvl(ctx.Int("verbosity")))
	ethlog.Root().SetHandler(logHandler)

	kind, err := parseKind(ctx.String("kind"))
	if err != nil {
		return errors.Wrap(err, "-kind")
	}

	reg := registry.NewRegistry(registry.Options{})
	const name = "shell"
	if err := reg.Create(kind, name); err != nil {
		return errors.Wrap(err, "create index")
	}
	h, err := reg.Open(name)
	if err != nil {
		return errors.Wrap(err, "open index")
	}

	fmt.Println("btindex shell —", kind, "index ready. commands: insert <k> <v>, get <k>, getnext, delete <k> [v], quit")

	var tx *registry.Txn

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "begin":
			tx = registry.Begin()
		case "commit":
			if tx != nil {
				fmt.Println(tx.Commit())
				tx = nil
			}
		case "abort":
			if tx != nil {
				fmt.Println(tx.Abort())
				tx = nil
			}
		case "insert":
			if len(fields) < 3 {
				fmt.Println("usage: insert <key> <value>")
				continue
			}
			key, err := parseShellKey(kind, fields[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(h.Insert(tx, key, []byte(fields[2])))
		case "get":
			if len(fields) < 2 {
				fmt.Println("usage: get <key>")
				continue
			}
			key, err := parseShellKey(kind, fields[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			v, err := h.Get(tx, key)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(string(v))
		case "getnext":
			k, v, err := h.GetNext(tx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(k, string(v))
		case "delete":
			if len(fields) < 2 {
				fmt.Println("usage: delete <key> [value]")
				continue
			}
			key, err := parseShellKey(kind, fields[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			var payload []byte
			if len(fields) >= 3 {
				payload = []byte(fields[2])
			}
			fmt.Println(h.Delete(tx, key, payload))
		case "quit", "exit":
			return nil
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
	return nil
}

func parseShellKey(kind bt.Kind, s string) (bt.Key, error) {
	switch kind {
	case bt.Short32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return bt.Key{}, err
		}
		return bt.NewShort32Key(int32(v)), nil
	case bt.Int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return bt.Key{}, err
		}
		return bt.NewInt64Key(v), nil
	default:
		return bt.NewVarBytesKey([]byte(s)), nil
	}
}

func main() {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	app := cli.App{
		Version:   fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta),
		Name:      "btshell",
		Usage:     "interactive shell over a single burst-trie index",
		Copyright: "2024 The VeChainThor developers",
		Flags:     flags,
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
