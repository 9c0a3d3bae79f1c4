// Package lingoroute is a routing-and-caching layer over remote translation
// providers.
//
// Lingoroute detects the source language of a text when it is not supplied,
// dispatches the translation to one of several interchangeable providers
// (OpenAI chat completions, Anthropic messages, or a dedicated bulk-translate
// endpoint), and caches provider responses so repeated requests for the same
// (source, target, text) triple never trigger a second remote call.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/lingoroute/lingoroute"
//	    "github.com/lingoroute/lingoroute/cache"
//	    "github.com/lingoroute/lingoroute/detect"
//	    "github.com/lingoroute/lingoroute/provider"
//	)
//
//	func main() {
//	    keys := func(name lingoroute.ProviderName, contextID string) (string, bool) {
//	        return os.Getenv("OPENAI_API_KEY"), true
//	    }
//
//	    translator, err := lingoroute.NewTranslator(lingoroute.ProviderOpenAI, keys,
//	        []lingoroute.Provider{provider.NewOpenAIProvider(provider.OpenAIConfig{})})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    svc := lingoroute.NewService(translator,
//	        lingoroute.WithStore(cache.NewMemoryStore(cache.MemoryConfig{})),
//	        lingoroute.WithDetector(detect.New()),
//	    )
//
//	    out, err := svc.Translate(context.Background(), lingoroute.Request{
//	        Text:       "Hello World",
//	        TargetLang: "es",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out) // Hola Mundo
//	}
package lingoroute
