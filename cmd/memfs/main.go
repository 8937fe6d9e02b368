package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/requests"
)

func main() {
	var (
		cfgPath  string
		nodesDef string
		verbose  int
	)

	rootCmd := &cobra.Command{
		Use:   "memfs",
		Short: "In-memory hierarchical filesystem demo",
		Long: `memfs builds an in-memory tree of directories and files, optionally seeded
from a nodes definition file, then walks through the library operations:
display, directory listing, permissions, and name search.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, nodesDef, verbose)
		},
	}
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (yaml or json)")
	rootCmd.Flags().StringVarP(&nodesDef, "nodes", "n", "", "Path to nodes def file (json array)")
	rootCmd.Flags().IntVarP(&verbose, "verbose", "v", 3,
		"Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfgPath, nodesDef string, verbose int) error {
	// File overrides first, then the verbosity flag on top
	override := &config.ConfigOverride{}
	if cfgPath != "" {
		fileOverride, err := config.LoadConfigOverrideFile(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", cfgPath, err)
		}
		override = fileOverride
	}
	override.LogLvl = &verbose
	cfg := config.NewConfig(override)

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")
	logger.Info().Int("verbose", verbose).Str("nodes", nodesDef).Msg("memfs initializing")

	fs := filesystem.NewFS(cfg)

	if nodesDef != "" {
		if err := seedFromFile(fs, nodesDef); err != nil {
			return err
		}
	} else {
		logger.Warn().Msg("No nodes file provided; seeding built-in demo tree")
		if err := seedDemo(fs); err != nil {
			return err
		}
	}

	// Walk through the library surface against the seeded tree
	fs.Display(os.Stdout)

	if names, err := fs.ListDirectory("dir/subdir"); err != nil {
		logger.Error().Err(err).Msg("Failed to list directory")
	} else {
		fmt.Println(names)
	}

	if err := fs.SetPermissions("dir/subdir/file1.txt", "user1", "rwx"); err != nil {
		logger.Error().Err(err).Msg("Failed to set permissions")
	} else if perm, ok, err := fs.GetPermissions("dir/subdir/file1.txt", "user1"); err != nil {
		logger.Error().Err(err).Msg("Failed to get permissions")
	} else if ok {
		fmt.Println(perm)
	}

	fmt.Println(fs.Search("file1.txt"))
	return nil
}

// seedFromFile loads a JSON array of node defs and adds them to the tree,
// directories first so explicit dir attributes land before file creation
// fills gaps implicitly.
func seedFromFile(fs *filesystem.FileSystem, nodesDef string) error {
	logger := util.GetLogger("seed")

	defData, err := os.ReadFile(nodesDef)
	if err != nil {
		return fmt.Errorf("failed to read nodes file %s: %w", nodesDef, err)
	}
	var rawNodes []json.RawMessage
	if err := json.Unmarshal(defData, &rawNodes); err != nil {
		return fmt.Errorf("failed to unmarshal nodes file %s: %w", nodesDef, err)
	}

	var fileRequests []*memfs.FileCreateRequest
	var dirRequests []*memfs.DirCreateRequest

	for _, rawNode := range rawNodes {
		nodeType, err := requests.GetNodeType(rawNode)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get node type")
			continue
		}

		switch nodeType {
		case memfs.FileNodeType:
			fileReq, err := requests.UnmarshalFileRequest(rawNode)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal file request")
				continue
			}
			fileRequests = append(fileRequests, fileReq)
			logger.Debug().Str("path", fileReq.Path).Msg("Processed file request")

		case memfs.DirNodeType:
			dirReq, err := requests.UnmarshalDirRequest(rawNode)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal directory request")
				continue
			}
			dirRequests = append(dirRequests, dirReq)
			logger.Debug().Str("path", dirReq.Path).Msg("Processed directory request")

		default:
			logger.Warn().Str("type", string(nodeType)).Msg("Unknown node type")
		}
	}

	dirAddCnt := 0
	for _, req := range dirRequests {
		if _, err := fs.AddDirNode(req); err != nil {
			logger.Debug().Str("path", req.Path).Err(err).Msg("Failed to add directory request")
			continue
		}
		dirAddCnt++
	}
	fileAddCnt := 0
	for _, req := range fileRequests {
		if _, err := fs.AddFileNode(req); err != nil {
			logger.Debug().Str("path", req.Path).Err(err).Msg("Failed to add file request")
			continue
		}
		fileAddCnt++
	}
	logger.Info().Int("directories", dirAddCnt).Int("files", fileAddCnt).Msg("Added new nodes to filesystem")
	return nil
}

// seedDemo builds the built-in walkthrough tree:
//
//	+ /
//	  + dir
//	    + subdir
//	      - file1.txt
//	      - file2.txt
//	    - file3.txt
//	    + subdir2
func seedDemo(fs *filesystem.FileSystem) error {
	type entry struct {
		path   string
		isFile bool
	}
	for _, e := range []entry{
		{"dir/subdir", false},
		{"dir/subdir/file1.txt", true},
		{"dir/subdir/file2.txt", true},
		{"dir/file3.txt", true},
		{"dir/subdir2", false},
	} {
		if err := fs.Create(e.path, e.isFile); err != nil {
			return fmt.Errorf("failed to seed %s: %w", e.path, err)
		}
	}
	return nil
}
