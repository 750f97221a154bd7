// Command hashpwd prompts for a password and prints its bcrypt hash, for use
// as the admin_password_hash bootstrap setting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/msoler84/userhub/internal/server/auth"
)

func main() {
	cost := flag.Int("k", 10, "bcrypt cost factor")
	flag.Parse()

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("error reading password: %v", err)
	}
	if len(password) == 0 {
		log.Fatal("empty password")
	}

	hash, err := auth.NewPasswordHasher(*cost).Hash(string(password))
	if err != nil {
		log.Fatalf("error hashing password: %v", err)
	}

	fmt.Println(hash)
}
