// Command tresorctl is a small demonstration CLI over the tresor
// library: create a store, add entries and fields, seal it to a file,
// and open it again. It exists to exercise the library end to end, not
// as a production password-manager front end.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/r4gus/tresor"
	"github.com/r4gus/tresor/internal/platform"
	"github.com/r4gus/tresor/storage"
)

// clipboardTTL is how long a value copied with get-field --clip stays on
// the clipboard before this process clears it again.
const clipboardTTL = 20 * time.Second

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "init":
		err = cmdInit(ctx, os.Args[2:])
	case "add-field":
		err = cmdAddField(ctx, os.Args[2:])
	case "get-field":
		err = cmdGetField(ctx, os.Args[2:])
	case "list":
		err = cmdList(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("tresorctl: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  tresorctl init <store-dir> <store-name>
  tresorctl add-field <store-dir> <store-name> <entry-id> <key> <value>
  tresorctl get-field <store-dir> <store-name> <entry-id> <key> [--clip]
  tresorctl list <store-dir> <store-name>`)
}

func getPassword() ([]byte, error) {
	fmt.Fprint(os.Stdout, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	return pw, err
}

func cmdInit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	dir, name := args[0], args[1]

	pw, err := getPassword()
	if err != nil {
		return err
	}
	defer zeroBytes(pw)

	store, err := tresor.New("tresorctl/0.1", name, tresor.ChaCha20Poly1305, tresor.CompressionNone, tresor.Argon2id)
	if err != nil {
		return err
	}
	defer store.Close()

	bs, err := storage.NewFileBlobStore(dir)
	if err != nil {
		return err
	}
	return sealInto(ctx, bs, store, name, pw)
}

func cmdAddField(ctx context.Context, args []string) error {
	if len(args) != 5 {
		usage()
		os.Exit(2)
	}
	dir, name, id, key, value := args[0], args[1], args[2], args[3], args[4]

	pw, err := getPassword()
	if err != nil {
		return err
	}
	defer zeroBytes(pw)

	bs, err := storage.NewFileBlobStore(dir)
	if err != nil {
		return err
	}
	store, err := openFrom(ctx, bs, name, pw)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.GetEntry([]byte(id))
	if err != nil {
		entry = store.CreateEntry([]byte(id))
		if err := store.AddEntry(entry); err != nil {
			return err
		}
	}
	if err := entry.AddField(key, []byte(value), tresor.SystemClock()); err != nil {
		return err
	}
	return sealInto(ctx, bs, store, name, pw)
}

func cmdGetField(ctx context.Context, args []string) error {
	clip := false
	if len(args) == 5 && args[4] == "--clip" {
		clip = true
		args = args[:4]
	}
	if len(args) != 4 {
		usage()
		os.Exit(2)
	}
	dir, name, id, key := args[0], args[1], args[2], args[3]

	pw, err := getPassword()
	if err != nil {
		return err
	}
	defer zeroBytes(pw)

	bs, err := storage.NewFileBlobStore(dir)
	if err != nil {
		return err
	}
	store, err := openFrom(ctx, bs, name, pw)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.GetEntry([]byte(id))
	if err != nil {
		return err
	}
	v, err := entry.GetField(key, tresor.SystemClock())
	if err != nil {
		return err
	}
	defer zeroBytes(v)

	if clip {
		if err := platform.NewSystemClipboard().Set(string(v), clipboardTTL); err != nil {
			return err
		}
		fmt.Printf("copied to clipboard, clearing in %s\n", clipboardTTL)
		// The clipboard is cleared by a goroutine after clipboardTTL; stay
		// alive long enough for it to run before the process exits.
		time.Sleep(clipboardTTL + time.Second)
		return nil
	}
	fmt.Println(string(v))
	return nil
}

func cmdList(ctx context.Context, args []string) error {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	dir, name := args[0], args[1]

	pw, err := getPassword()
	if err != nil {
		return err
	}
	defer zeroBytes(pw)

	bs, err := storage.NewFileBlobStore(dir)
	if err != nil {
		return err
	}
	store, err := openFrom(ctx, bs, name, pw)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, e := range store.GetEntries(nil) {
		fmt.Printf("%s\n", e.ID())
		for _, f := range e.Fields() {
			fmt.Printf("  %s\n", f.Key())
		}
	}
	return nil
}

func sealInto(ctx context.Context, bs *storage.FileBlobStore, store *tresor.Store, name string, pw []byte) error {
	var buf bytes.Buffer
	if err := store.Seal(&buf, pw); err != nil {
		return err
	}
	return bs.Put(ctx, name, buf.Bytes())
}

func openFrom(ctx context.Context, bs *storage.FileBlobStore, name string, pw []byte) (*tresor.Store, error) {
	blob, err := bs.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return tresor.Open(bytes.NewReader(blob), pw)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
