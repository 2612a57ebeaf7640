package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wippyai/dynvalue/decode"
	"github.com/wippyai/dynvalue/value"
	"github.com/wippyai/dynvalue/valuejson"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to JSON/JSONC value tree")
		doDecode    = flag.Bool("decode", false, "Decode the tree into a generic Go value and print it")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -file <tree.json> [-decode]")
		fmt.Fprintln(os.Stderr, "       inspect -file <tree.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *doDecode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, doDecode bool) error {
	v, err := loadTree(file)
	if err != nil {
		return err
	}

	fmt.Printf("Tree: %s\n", file)
	fmt.Printf("Shape: %s\n", value.Name[struct{}](v.Shape))
	fmt.Printf("Nodes: %d\n\n", countNodes(v))
	fmt.Println(v)

	if doDecode {
		var out any
		if err := decode.Unmarshal(v, &out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Printf("\nDecoded: %#v\n", out)
	}
	return nil
}

func loadTree(file string) (value.Value[struct{}], error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return value.Value[struct{}]{}, fmt.Errorf("read file: %w", err)
	}
	v, err := valuejson.Parse(data)
	if err != nil {
		return value.Value[struct{}]{}, fmt.Errorf("parse: %w", err)
	}
	return v, nil
}

func countNodes(v value.Value[struct{}]) int {
	n := 0
	value.MapContext(v, func(struct{}) struct{} {
		n++
		return struct{}{}
	})
	return n
}
