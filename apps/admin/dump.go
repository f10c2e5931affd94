package main

import (
	"context"
	"fmt"
)

// dump prints every stored key with its raw JSON value, one per line.
func (cli *commandLine) dump() error {
	return cli.store.Backend().ForEach(context.Background(), func(key string, value []byte) error {
		_, err := fmt.Fprintf(cli.out, "%s\t%s\n", key, value)
		return err
	})
}
