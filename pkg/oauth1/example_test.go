package oauth1_test

import (
	"fmt"

	"github.com/matzehuels/chirp/pkg/oauth1"
)

func ExampleSign() {
	params := map[string]string{
		"file":                   "vacation.jpg",
		"size":                   "original",
		"oauth_consumer_key":     "dpf43f3p2l4k3l03",
		"oauth_token":            "nnch734d00sl2jdk",
		"oauth_nonce":            "kllo9940pd9333jh",
		"oauth_timestamp":        "1191242096",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_version":          "1.0",
	}
	sig := oauth1.Sign("GET", "http://photos.example.net/photos", params, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00")
	fmt.Println(sig)
	// Output:
	// tR3+Ty81lMeYAr/Fid0kMTYa/WM=
}

func ExamplePercentEncode() {
	fmt.Println(oauth1.PercentEncode("Ladies + Gentlemen"))
	// Output:
	// Ladies%20%2B%20Gentlemen
}
