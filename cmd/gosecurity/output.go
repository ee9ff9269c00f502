package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrEthical07/goSecurity/bag"
)

// parsePairs reads key=value arguments in order. The value keeps any further
// '=' characters, so base64 ciphertexts pass through unchanged.
func parsePairs(args []string) (*bag.Bag, error) {
	b := bag.New()
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", arg)
		}
		b.Set(k, v)
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("at least one key=value argument is required")
	}
	return b, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	rootCmd.Println(string(data))
	return nil
}

func printBag(b *bag.Bag) error {
	if rootArgs.output == "json" {
		return printJSON(b.Map())
	}
	return b.Each(func(k, v string) error {
		rootCmd.Printf("%s=%s\n", k, v)
		return nil
	})
}
