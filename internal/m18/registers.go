package m18

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// refreshSettle is the idle time between priming the regions and reading.
const refreshSettle = 100 * time.Millisecond

// ReadRegisters reads and decodes the registers with the given IDs.
//
// With forceRefresh every bulk region is read first and the pack is idled
// briefly, which makes it update its live values. IDs outside the table
// and registers that fail to read or decode are left out of the result.
// A failed handshake is logged but not fatal: the reads that follow will
// time out and be skipped.
func (c *Client) ReadRegisters(ids []int, forceRefresh bool) ([]registers.Reading, error) {
	defer c.Idle()
	if _, err := c.Reset(); err != nil {
		return nil, err
	}

	if forceRefresh {
		for _, region := range c.tables.Regions {
			if _, err := c.ReadMemory(region.Address(), int(region.Length)); err != nil {
				log.Debug().Err(err).Msgf("refresh of %#06x failed", region.Address())
			}
		}
		c.Idle()
		c.sleep(refreshSettle)
	}

	ok, err := c.Reset()
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn().Msg("battery did not answer the reset handshake")
	}

	results := make([]registers.Reading, 0, len(ids))
	for _, id := range ids {
		def, ok := c.tables.Register(id)
		if !ok {
			continue
		}
		data, err := c.ReadMemory(def.Address, def.Length)
		if err != nil {
			if c.printRX {
				log.Debug().Err(err).Msgf("failed to read register %d", id)
			}
			continue
		}
		v, err := registers.Decode(def, data)
		if err != nil {
			if c.printRX {
				log.Debug().Err(err).Msgf("failed to parse register %d", id)
			}
			continue
		}
		results = append(results, registers.Reading{ID: id, Definition: def, Value: v})
	}
	return results, nil
}

// ReadAllRegisters reads every register in the table.
func (c *Client) ReadAllRegisters(forceRefresh bool) ([]registers.Reading, error) {
	ids := make([]int, len(c.tables.Registers))
	for i := range ids {
		ids[i] = i
	}
	return c.ReadRegisters(ids, forceRefresh)
}

// ReadAllRaw reads every bulk region and returns the raw bytes of those
// that answered.
func (c *Client) ReadAllRaw() (registers.Image, error) {
	defer c.Idle()
	if _, err := c.Reset(); err != nil {
		return nil, err
	}

	var img registers.Image
	for _, region := range c.tables.Regions {
		data, err := c.ReadMemory(region.Address(), int(region.Length))
		if err != nil {
			if c.printRX {
				log.Debug().Err(err).Msgf("failed to read from %#06x", region.Address())
			}
			continue
		}
		img = append(img, registers.Block{Address: region.Address(), Data: append([]byte(nil), data...)})
	}
	return img, nil
}
