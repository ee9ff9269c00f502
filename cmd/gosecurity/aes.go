package main

import (
	"github.com/spf13/cobra"

	"github.com/MrEthical07/goSecurity/aes"
)

var aesCmd = &cobra.Command{
	Use:   "aes",
	Short: "Symmetric encryption with the AES cipher catalog",
}

type aesFlags struct {
	method string
	key    string
	iv     string
}

var aesArgs aesFlags

func init() {
	aesCmd.PersistentFlags().StringVar(&aesArgs.method, "method", "",
		"cipher method, e.g. aes-256-cbc (overrides aes.method)")
	aesCmd.PersistentFlags().StringVar(&aesArgs.key, "key", "",
		"hex encoded key (overrides aes.key and GOSECURITY_AES_KEY)")
	aesCmd.PersistentFlags().StringVar(&aesArgs.iv, "iv", "",
		"hex encoded iv (overrides aes.iv and GOSECURITY_AES_IV)")
	rootCmd.AddCommand(aesCmd)
}

// newCipher configures a cipher from the loaded settings and the aes flags.
func newCipher() (*aes.Cipher, error) {
	c, err := sec.NewCipher()
	if err != nil {
		return nil, err
	}
	s := sec.Config().AES
	if aesArgs.method != "" {
		s.Method = aesArgs.method
	}
	if aesArgs.key != "" {
		s.Key = aesArgs.key
	}
	if aesArgs.iv != "" {
		s.IV = aesArgs.iv
	}
	if err := c.Config(s); err != nil {
		return nil, err
	}
	return c, nil
}

var aesCreateCmd = &cobra.Command{
	Use:   "create [METHOD]",
	Short: "Generate a random key and iv for a cipher method",
	Example: `  # Generate settings for the default method
  gosecurity aes create

  # Generate settings for AES-256-GCM as JSON
  gosecurity aes create aes-256-gcm -o json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: aesCreateCmdRun,
}

func init() {
	aesCmd.AddCommand(aesCreateCmd)
}

func aesCreateCmdRun(cmd *cobra.Command, args []string) error {
	method := aesArgs.method
	if len(args) == 1 {
		method = args[0]
	}
	if method == "" {
		method = sec.Config().AES.Method
	}
	s, err := aes.Generate(method)
	if err != nil {
		return err
	}
	if rootArgs.output == "json" {
		return printJSON(s)
	}
	rootCmd.Printf("GOSECURITY_AES_METHOD=%s\nGOSECURITY_AES_KEY=%s\nGOSECURITY_AES_IV=%s\n", s.Method, s.Key, s.IV)
	return nil
}

var aesEncodeCmd = &cobra.Command{
	Use:   "encode KEY=VALUE...",
	Short: "Encrypt values and print them base64 encoded",
	Example: `  # Encrypt two values with settings from the environment
  eval "$(gosecurity aes create | sed 's/^/export /')"
  gosecurity aes encode name=Sleon email=sleon@example.com
`,
	Args: cobra.MinimumNArgs(1),
	RunE: aesEncodeCmdRun,
}

func init() {
	aesCmd.AddCommand(aesEncodeCmd)
}

func aesEncodeCmdRun(cmd *cobra.Command, args []string) error {
	rows, err := parsePairs(args)
	if err != nil {
		return err
	}
	c, err := newCipher()
	if err != nil {
		return err
	}
	if err := rows.Each(c.Encode); err != nil {
		return err
	}
	return printBag(c.Get())
}

var aesDecodeCmd = &cobra.Command{
	Use:   "decode KEY=CIPHERTEXT...",
	Short: "Decrypt base64 encoded values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  aesDecodeCmdRun,
}

func init() {
	aesCmd.AddCommand(aesDecodeCmd)
}

func aesDecodeCmdRun(cmd *cobra.Command, args []string) error {
	rows, err := parsePairs(args)
	if err != nil {
		return err
	}
	c, err := newCipher()
	if err != nil {
		return err
	}
	if err := c.Decode(rows); err != nil {
		return err
	}
	return printBag(c.Get())
}
