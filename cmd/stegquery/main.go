package main

import (
	"flag"
	"fmt"
	"os"

	"dnsveil/internal/dns"
	"dnsveil/internal/steg"
)

// stegquery fragments a payload and prints the resulting query packets as hex
// dumps. Nothing is sent anywhere; this exists to eyeball what the channel
// would put on the wire.
func main() {
	var (
		domain   = flag.String("domain", "example.com", "Base domain for generated subdomains")
		strategy = flag.String("strategy", "txt-only", "Encoding strategy (txt-only, multi-record, distributed)")
		maxTXT   = flag.Int("max-txt", 200, "Base64 budget per TXT chunk")
		compress = flag.Bool("compress", false, "Compress the payload before fragmenting")
		dump     = flag.Bool("dump", true, "Hex-dump each query packet")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: stegquery [flags] payload\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	payload := []byte(flag.Arg(0))

	strat, err := steg.ParseStrategy(*strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stegquery error: %v\n", err)
		os.Exit(1)
	}
	if strat == steg.StrategyHTTPBody {
		fmt.Fprintf(os.Stderr, "stegquery error: %s produces no query packets\n", strat)
		os.Exit(1)
	}

	enc := steg.NewEncoder(steg.Config{
		Strategy:       strat,
		MaxTXTLength:   *maxTXT,
		MaxFragments:   10,
		UseCompression: *compress,
	}, nil)

	res, err := enc.EncodePayload(payload, *domain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stegquery error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("strategy=%s fragments=%d truncated=%v\n", strat, len(res.Fragments), res.Truncated)

	builder := dns.NewBuilder(nil)
	for _, frag := range res.Fragments {
		q := dns.Question{Name: frag.Domain, Type: frag.RecordType, Class: dns.ClassIN}
		query, err := builder.BuildQuery(q, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stegquery error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n%s %s data=%d query=%d bytes\n", frag.Domain, frag.RecordType, len(frag.Data), len(query))
		if *dump {
			fmt.Print(dns.DumpHex(query))
		}
	}
}
