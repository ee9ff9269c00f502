package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrEthical07/goSecurity/password"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Hash and verify passwords",
}

type passwordFlags struct {
	stdin bool
}

var passwordArgs passwordFlags

func init() {
	passwordCmd.PersistentFlags().BoolVar(&passwordArgs.stdin, "password-stdin", false,
		"read the password from the first line of stdin")
	rootCmd.AddCommand(passwordCmd)
}

// readPassword returns args[0], or the first stdin line with --password-stdin.
func readPassword(cmd *cobra.Command, args []string) (string, []string, error) {
	if !passwordArgs.stdin {
		if len(args) == 0 {
			return "", nil, fmt.Errorf("password is required")
		}
		return args[0], args[1:], nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", nil, fmt.Errorf("unable to read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), args, nil
}

var passwordHashCmd = &cobra.Command{
	Use:   "hash [PASSWORD]",
	Short: "Hash a password with the configured algorithm",
	Example: `  echo -n 'correct-horse' | gosecurity password hash --password-stdin
`,
	Args: cobra.MaximumNArgs(1),
	RunE: passwordHashCmdRun,
}

func init() {
	passwordCmd.AddCommand(passwordHashCmd)
}

func passwordHashCmdRun(cmd *cobra.Command, args []string) error {
	pw, _, err := readPassword(cmd, args)
	if err != nil {
		return err
	}
	hash, err := sec.Hasher().Hash(pw)
	if err != nil {
		return err
	}
	rootCmd.Println(hash)
	return nil
}

var passwordVerifyCmd = &cobra.Command{
	Use:   "verify [PASSWORD] HASH",
	Short: "Check a password against a bcrypt or argon2id hash",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  passwordVerifyCmdRun,
}

func init() {
	passwordCmd.AddCommand(passwordVerifyCmd)
}

func passwordVerifyCmdRun(cmd *cobra.Command, args []string) error {
	pw, rest, err := readPassword(cmd, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("a single hash must be specified")
	}
	ok, err := password.Verify(pw, rest[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("password does not match")
	}
	rootCmd.Println("✔ password matches")
	return nil
}

var passwordDigestCmd = &cobra.Command{
	Use:   "digest VALUE...",
	Short: "Print the SHA-256 hex digest of each value",
	Args:  cobra.MinimumNArgs(1),
	RunE:  passwordDigestCmdRun,
}

func init() {
	passwordCmd.AddCommand(passwordDigestCmd)
}

func passwordDigestCmdRun(cmd *cobra.Command, args []string) error {
	for _, v := range args {
		rootCmd.Println(password.SHA256(v))
	}
	return nil
}
