package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tkrajina/typescriptify-golang-structs/typescriptify"

	"shardvault/shared"
)

const jsConstsFile = "constants.ts"
const structsFile = "interfaces.ts"
const jsEndpointsFile = "endpoints.ts"

func write(path, contents string) {
	if err := os.WriteFile(path, []byte(contents), 0666); err != nil {
		log.Fatal(err)
	}
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Must specify output directory")
	}

	outDir := os.Args[1]
	consts, endpoints := shared.GenerateSharedJS()
	if _, err := os.Stat(outDir); err != nil {
		log.Fatal(err)
	}

	constsOut := fmt.Sprintf("%s/%s", outDir, jsConstsFile)
	structsOut := fmt.Sprintf("%s/%s", outDir, structsFile)
	endpointsOut := fmt.Sprintf("%s/%s", outDir, jsEndpointsFile)

	write(constsOut, consts)
	write(endpointsOut, endpoints)

	fmt.Printf("TypeScript constants written to: %s\n", constsOut)
	fmt.Printf("TypeScript endpoints written to: %s\n", endpointsOut)

	// Disable output for typescriptify (too verbose w/ no way to disable)
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	old := os.Stdout
	os.Stdout = f

	converter := typescriptify.New().
		Add(shared.UnlockRequest{}).
		Add(shared.VaultStatusResponse{}).
		Add(shared.StreamPortResponse{}).
		Add(shared.ShardUpload{}).
		Add(shared.Shard{}).
		Add(shared.ImportRequest{}).
		Add(shared.Asset{})

	converter.WithBackupDir("")
	err = converter.ConvertToFile(structsOut)
	if err != nil {
		panic(err.Error())
	}

	os.Stdout = old
	fmt.Printf("TypeScript interfaces written to: %s\n", structsOut)
}
