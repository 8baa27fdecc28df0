package main

import (
	"log"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/webmafia/bcrypt64/salt"
)

type record struct {
	Salt     string `json:"salt"`
	Cost     int    `json:"cost"`
	Revision string `json:"revision"`
}

func main() {
	if err := run(); err != nil {
		log.Println(err)
	}
}

func run() (err error) {
	gen, err := salt.NewGenerator(salt.GeneratorOptions{
		Cost: 12,
	})

	if err != nil {
		return
	}

	var (
		s   salt.Salt
		buf []byte
	)

	for range 3 {
		if s, err = gen.Generate(); err != nil {
			return
		}

		if buf, err = json.Append(buf[:0], record{
			Salt:     s.String(),
			Cost:     s.Cost,
			Revision: s.Revision.String(),
		}, 0); err != nil {
			return
		}

		buf = append(buf, '\n')

		if _, err = os.Stdout.Write(buf); err != nil {
			return
		}
	}

	return
}
