package configsync

import (
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/providers"
	"abconfig/internal/structures"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// PrefsStore is a file-backed key-value store. The whole map lives in one
// zstd-compressed JSON file written atomically on every Set; reads go through
// the byte cache first.
type PrefsStore struct {
	mu         sync.Mutex
	path       string
	values     map[string]string
	compressor interfaces.CompressorInterface
	cache      providers.CacheProviderInterface
	logger     providers.Logger
}

func NewPrefsStore(conf *structures.Config, compressor interfaces.CompressorInterface, cache providers.CacheProviderInterface, logger providers.Logger) (interfaces.PrefsInterface, error) {
	ps := &PrefsStore{
		path:       conf.Prefs.FilePath,
		values:     make(map[string]string),
		compressor: compressor,
		cache:      cache,
		logger:     logger,
	}

	if err := ps.load(); err != nil {
		return nil, err
	}

	return ps, nil
}

func (p *PrefsStore) Get(key string) (string, bool) {
	if val, ok := p.cache.Get("prefs:" + key); ok {
		return string(val), true
	}

	p.mu.Lock()
	val, ok := p.values[key]
	p.mu.Unlock()

	if ok {
		p.cache.Set("prefs:"+key, []byte(val))
	}
	return val, ok
}

func (p *PrefsStore) Has(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.values[key]
	return ok
}

func (p *PrefsStore) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = value
	if err := p.save(); err != nil {
		return err
	}

	p.cache.Set("prefs:"+key, []byte(value))
	return nil
}

// save writes the whole map through a temp file so a crash mid-write never
// corrupts the previous state. Caller holds the mutex.
func (p *PrefsStore) save() error {
	jsonData, err := json.Marshal(p.values)
	if err != nil {
		return err
	}
	data, err := p.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := p.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, p.path)
}

func (p *PrefsStore) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := p.compressor.Decompress(data)
	if err != nil {
		return err
	}

	return json.Unmarshal(decompressed, &p.values)
}
