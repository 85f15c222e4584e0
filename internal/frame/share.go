package frame

import "net/url"

const composeBase = "https://warpcast.com/~/compose"

// ComposeURL builds a Warpcast compose link with the given cast text and a
// single embedded URL.
func ComposeURL(text, embedURL string) string {
	params := url.Values{}
	params.Set("text", text)
	params.Add("embeds[]", embedURL)
	return composeBase + "?" + params.Encode()
}
