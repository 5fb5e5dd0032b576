// Command totp prints a single 6-digit SHA1 code for a base32 secret.
// Handy for smoke-testing a secret before saving it.
package main

import (
	"fmt"
	"os"
	"time"

	"quackey/internal/otp"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: totp <base32-secret>")
		os.Exit(1)
	}

	key, err := otp.DecodeSecret(os.Args[1])
	if err != nil {
		fmt.Printf("Error decoding secret: %v\n", err)
		os.Exit(1)
	}

	code, remaining, err := otp.Generate(key, 6, 30, otp.AlgorithmSHA1, time.Now())
	if err != nil {
		fmt.Printf("Error generating code: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%ds left)\n", code, remaining)
}
