package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithChunkSize is an option builder that sets the fragment size of the scanner backend.
// Values below one are ignored.
//
// Parameters:
//   - n: the number of bytes fed to the parser per call
//
// Returns:
//   - LoaderBuilderOption: a function that applies the chunk size option to a loader
func WithChunkSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.chunkSize = n
		}
	}
}

// WithWorkers is an option builder that sets the number of LoadAll workers.
// Values below one are ignored.
//
// Parameters:
//   - n: the maximum number of files parsed at once
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithParserOptions is an option builder that forwards options to every parser the Loader creates.
//
// Parameters:
//   - options: the parser options, e.g. WithKeywordPolicy(KeywordStrict)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the parser options to a loader
func WithParserOptions(options ...ParserBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.parserOptions = append(l.parserOptions, options...)
	}
}

// WithAsset is an option builder that pre-populates the asset cache.
//
// Parameters:
//   - key: the cache key for the asset
//   - asset: the asset to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the asset option to a loader
func WithAsset(key string, asset *Asset) LoaderBuilderOption {
	return func(l *loader) {
		l.assetCache[key] = asset
	}
}
