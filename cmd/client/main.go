package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/Anish-Chanda/bytesearch/internal/api"
)

var (
	serverAddr = flag.String("addr", "http://localhost:8080", "bsearch server address")
	algorithm  = flag.StringP("algorithm", "a", "", "algorithm (rabin-karp or shift-and)")
	hasherName = flag.String("hasher", "", "rolling hasher for rabin-karp")
	limit      = flag.Int("limit", 20, "number of runs to list")
)

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkStatus(resp *http.Response, what string) {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "%s failed (%d): %s\n", what, resp.StatusCode, bytes.TrimSpace(body))
		os.Exit(1)
	}
}

func searchFile(pattern, path string) {
	text, err := os.ReadFile(path)
	must(err)

	body, err := json.Marshal(api.SearchRequest{
		Text:      text,
		Pattern:   []byte(pattern),
		Algorithm: *algorithm,
		Hasher:    *hasherName,
	})
	must(err)

	resp, err := http.Post(*serverAddr+"/search", "application/json", bytes.NewReader(body))
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "search")

	var out api.SearchResponse
	must(json.NewDecoder(resp.Body).Decode(&out))
	if out.Count == 0 {
		fmt.Println("no matches")
	}
	for _, pos := range out.Positions {
		fmt.Println(pos)
	}
	fmt.Fprintf(os.Stderr, "%s: %d matches (done in %d μs)\n", out.Algorithm, out.Count, out.ElapsedUS)
}

func listRuns() {
	resp, err := http.Get(*serverAddr + "/runs?limit=" + strconv.Itoa(*limit))
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "runs")

	var runs []api.RunResponse
	must(json.NewDecoder(resp.Body).Decode(&runs))
	for _, r := range runs {
		fmt.Printf("%s  %s  %-11s %-12s %6d matches  %8d μs  %q\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.ID, r.Algorithm, r.Hasher, r.Count, r.ElapsedUS, r.Pattern)
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: client [flags] <search|runs> [args]\n")
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	switch cmd {
	case "search":
		if flag.NArg() != 3 {
			fmt.Fprintf(os.Stderr, "usage: client search <pattern> <filepath>\n")
			os.Exit(1)
		}
		searchFile(flag.Arg(1), flag.Arg(2))

	case "runs":
		listRuns()

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(1)
	}
}
