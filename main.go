package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/thehowl/godiff/pkg/db"
	httpsvc "github.com/thehowl/godiff/pkg/http"
	"github.com/thehowl/godiff/pkg/storage"
	"go.etcd.io/bbolt"
)

type optsType struct {
	listenAddr     string
	publicURL      string
	dbFile         string
	s3Endpoint     string
	s3AccessKey    string
	s3AccessSecret string
	s3Bucket       string
	cacheMaxBytes  uint64
}

func defaultEnv(s, def string) string {
	v, ok := os.LookupEnv(s)
	if ok {
		return v
	}
	return def
}

func stringVar(p *string, fg, defaultValue, usage string) {
	ev := strings.ReplaceAll(strings.ToUpper(fg), "-", "_")
	flag.StringVar(p, fg, defaultEnv(ev, defaultValue), usage+". env var: "+ev)
}

func main() {
	var opts optsType
	stringVar(&opts.listenAddr, "listen-addr", ":18844", "listen address for the web server")
	stringVar(&opts.publicURL, "public-url", "http://localhost:18844", "url for the server, used in the curl example")
	stringVar(&opts.dbFile, "db-file", "data/db.bolt", "the file used for the database. "+
		"it always holds the file index; it also holds a cache of the uploads (if used together with s3) or the uploads themselves")
	stringVar(&opts.s3Endpoint, "s3-endpoint", "", "s3 endpoint; when set, uploads are stored in s3 "+
		"and db-file keeps the file index plus a local cache")
	stringVar(&opts.s3AccessKey, "s3-access-key", "", "s3 access key")
	stringVar(&opts.s3AccessSecret, "s3-access-secret", "", "s3 access secret")
	stringVar(&opts.s3Bucket, "s3-bucket", "", "s3 bucket")
	flag.Uint64Var(&opts.cacheMaxBytes, "cache-max-bytes", 256<<20, "maximum size in bytes of the local "+
		"cache, when using s3 storage")
	flag.Parse()

	boltDB, err := bbolt.Open(opts.dbFile, 0o600, nil)
	if err != nil {
		panic(fmt.Errorf("db open error: %w", err))
	}

	objStorage, err := buildStorage(opts, boltDB)
	if err != nil {
		panic(fmt.Errorf("storage init error: %w", err))
	}

	srv := &httpsvc.Server{
		PublicURL: opts.publicURL,
		Storage:   objStorage,
		DB:        &db.DB{DB: boltDB},
		Output:    os.Stdout,
	}

	log.Println("listening on", opts.listenAddr)
	panic(http.ListenAndServe(opts.listenAddr, srv.Router()))
}

// buildStorage wires the object storage backend described by opts: plain
// bbolt when no s3 endpoint is configured, or an s3 bucket fronted by a
// bbolt-backed cache otherwise.
func buildStorage(opts optsType, boltDB *bbolt.DB) (storage.Storage, error) {
	if opts.s3Endpoint == "" {
		return storage.NewDBStorage(boltDB, []byte("storage")), nil
	}

	minioClient, err := minio.New(opts.s3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.s3AccessKey, opts.s3AccessSecret, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("minio init error: %w", err)
	}

	permanent := storage.NewMinioStorage(minioClient, opts.s3Bucket)
	cache := storage.NewDBStorage(boltDB, []byte("cache")).(storage.ListStorage)
	return storage.NewCachedStorage(cache, permanent, opts.cacheMaxBytes)
}
